// Package ui renders terminal output for the CLI with lipgloss styles and tables.
package ui
