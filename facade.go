package xtrace

// Facade helpers over the global Logger.
// Usage: xtrace.Log("enter: parse()")

func Log(message string)    { L().Log(message) }
func IsEnabled() bool       { return L().IsEnabled() }
func SetLevel(label string) { L().SetLevel(label) }
