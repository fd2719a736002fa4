// Package test holds small assert helpers shared by the package tests.
package test

import "testing"

func AssertEqual(t *testing.T, expected, actual any) bool {
	t.Helper()

	if expected != actual {
		t.Errorf(""+
			"Not equal: \n"+
			"Expected: %v\n"+
			"Actual: %v", expected, actual)
		return false
	}

	return true
}

func AssertTrue(t *testing.T, condition bool) bool {
	t.Helper()

	if !condition {
		t.Error("Expected condition to be true")
		return false
	}

	return true
}
