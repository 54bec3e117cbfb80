package main

// Exit codes for the quote2pdf CLI. Every failure, whatever its cause,
// exits with ExitFailure; the diagnostic on stderr tells them apart.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// exitCodeFor returns the exit code for an error.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}
