package crosspile

// Release is the semantic version of the application state machine. It is
// bumped whenever a change could make two nodes disagree on a block.
const Release = "v0.1.0-dev"

// Build is the commit the binary was built from, set with
//
//	-ldflags "-X github.com/iov-one/crosspile.Build=<sha>"
var Build = ""

// Version is reported over ABCI Info and by the version command.
func Version() string {
	if Build == "" {
		return Release
	}
	return Release + "+" + Build
}
