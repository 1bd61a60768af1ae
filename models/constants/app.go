package constants

const (
	ExternalName = "Homework Watchdog"
	InternalName = "homework-watchdog"
	Version      = "1.0.0"
)
