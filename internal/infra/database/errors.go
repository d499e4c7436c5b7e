package database

import "fmt"

// Custom errors
var ErrStateNotFound = fmt.Errorf("state not found")
