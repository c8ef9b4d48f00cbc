// Package log provides logging functionality with automatic masking of
// personal information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic masking of author email addresses in log output
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Privacy Features
//
// The MaskHandler automatically masks personal information in log output:
//   - Attribute values that look like email addresses
//   - Attribute keys that indicate contact data (email, mail, contact)
//
// Submission data often contains real author contact details. Even in
// verbose mode those values are masked so that logs can be shared or
// attached to bug reports without leaking addresses.
//
// # Usage
//
//	// Create a masking logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("author interned",
//	    "email", "alice.zhang@nus.edu.sg", // Will be masked
//	    "paper", "P001",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
