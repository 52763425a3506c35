// Package ports defines the core interfaces for the application.
package ports
