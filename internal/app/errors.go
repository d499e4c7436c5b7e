package app

import "fmt"

// Application-level errors for the session controller
var ErrUnknownCategory = fmt.Errorf("unknown category")
var ErrNoCategoriesSelected = fmt.Errorf("please select at least one category to continue")
var ErrInvalidTransition = fmt.Errorf("action not available in the current view")
var ErrInvalidFrequency = fmt.Errorf("invalid notification frequency")
