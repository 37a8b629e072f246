// Package log provides structured logging for the mLOGO interpreter.
//
// Package: log
// Title: mLOGO Structured Logging
// Description: Leveled, field-based logging with JSON and text output. Loggers
//              are immutable values: WithField/WithFields return a clone, so a
//              component can add its own "component" field without affecting
//              the process default.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-14
//
// Usage:
//
//	logger := log.NewWithConfig(log.Config{Level: log.LevelDebug, Format: log.FormatText})
//	logger = logger.WithField("component", "turtle-parser")
//	logger.Debug("statement complete", log.Fields{"instructionId": 3})
package log
