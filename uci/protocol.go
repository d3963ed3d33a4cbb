package uci

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// Response lines and prefixes.
const (
	UCIOK   = "uciok"
	ReadyOK = "readyok"

	IDNamePrefix   = "id name "
	IDAuthorPrefix = "id author "
	OptionPrefix   = "option name "
	InfoPrefix     = "info"

	// BestMovePrefix starts the final line of a search.
	BestMovePrefix = "bestmove"

	// ResultPrefix starts the final line of an extension command.
	ResultPrefix = "result:"

	// ExtPrefix is prepended to extension command names.
	ExtPrefix = "ext:"

	// ErrorMarker anywhere in a response line aborts the current command.
	ErrorMarker = "error"

	// JSONRPCVersion is the version tag of correlated requests.
	JSONRPCVersion = "2.0"
)

// Extension command names.
const (
	ExtStaticEval     = "static_eval"
	ExtLegalMoves     = "legal_moves"
	ExtMakeMoves      = "make_moves"
	ExtMoveAttributes = "move_attributes"
	ExtVersion        = "version"
)

const (
	// DefaultLineCeiling is the number of lines read while waiting for a
	// prefixed result before giving up.
	DefaultLineCeiling = 200

	// DefaultMoveTime is the search time used when a SearchLimit is empty.
	DefaultMoveTime = 100 * time.Millisecond

	// DefaultQuitTimeout is how long Close waits for the engine to exit
	// after quit before killing it.
	DefaultQuitTimeout = 2 * time.Second

	// DefaultExecutableName is looked up on PATH when no candidate exists.
	DefaultExecutableName = "odonata"
)

// DefaultOptions are applied after the handshake unless overridden.
var DefaultOptions = map[string]string{
	"Hash": "16",
}

// executableCandidates are checked in order, relative to the working
// directory, when no path is configured.
var executableCandidates = []string{
	filepath.Join("..", "engines", "odonata", "odonata-stable"),
	filepath.Join(".", "odonata.exe"),
	filepath.Join(".", "odonata"),
	filepath.Join("target", "release", "odonata.exe"),
	filepath.Join("target", "release", "odonata"),
	filepath.Join("..", "..", "odonata", "target", "release", "odonata.exe"),
	filepath.Join("..", "..", "odonata", "target", "release", "odonata"),
}

// FindExecutable returns path if it names an executable file, otherwise
// the first existing candidate location, otherwise the engine found on
// PATH.
func FindExecutable(path string) (string, error) {
	if path != "" {
		if isExecutable(path) {
			return path, nil
		}
		if found, err := exec.LookPath(path); err == nil {
			return found, nil
		}
		return "", fmt.Errorf("%w: %s", ErrExecutableNotFound, path)
	}
	for _, candidate := range executableCandidates {
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	if found, err := exec.LookPath(DefaultExecutableName); err == nil {
		return found, nil
	}
	return "", fmt.Errorf("%w: tried %v and %s on PATH", ErrExecutableNotFound,
		executableCandidates, DefaultExecutableName)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Mode().Perm()&0111 != 0
}
