// Package testing provides testing utilities for code that logs through logbricks.
//
// # Mocks
//
// The mocks subpackage provides a testify-based mock of logger.Engine for
// asserting exactly which records a component emits.
//
// # Fixtures
//
// The fixtures subpackage provides pre-configured engines and a capturing Log
// that writes real records with a fixed clock and hostname:
//
//	log, buf := fixtures.NewCapturingLog()
//	log.Info("started")
//	records, err := fixtures.DecodeRecords(buf)
//
// Import the specific subpackages you need:
//
//	import (
//		"github.com/gaborage/logbricks/testing/mocks"
//		"github.com/gaborage/logbricks/testing/fixtures"
//	)
package testing
