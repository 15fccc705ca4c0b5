package stdlib

import (
	"io"
	"os"

	"github.com/lunalang/luna/pkg/diagnostics"
	"github.com/lunalang/luna/pkg/interp"
)

func (l *Lib) fileNatives() []native {
	return []native{
		{"open", l.fileOpen},
		{"close", l.fileClose},
		{"read", l.fileRead},
		{"read_line", l.fileReadLine},
		{"write", l.fileWrite},
		{"file_exists", l.fileExists},
		{"remove_file", l.fileRemove},
		{"flush", l.fileFlush},
	}
}

// modeFlags translates fopen-style mode strings. The binary suffix is
// accepted and ignored.
func modeFlags(mode string) (int, bool) {
	plus := false
	base := byte(0)
	for i := 0; i < len(mode); i++ {
		switch mode[i] {
		case 'r', 'w', 'a':
			if base != 0 {
				return 0, false
			}
			base = mode[i]
		case '+':
			plus = true
		case 'b':
		default:
			return 0, false
		}
	}
	switch base {
	case 'r':
		if plus {
			return os.O_RDWR, true
		}
		return os.O_RDONLY, true
	case 'w':
		flags := os.O_CREATE | os.O_TRUNC
		if plus {
			return flags | os.O_RDWR, true
		}
		return flags | os.O_WRONLY, true
	case 'a':
		flags := os.O_CREATE | os.O_APPEND
		if plus {
			return flags | os.O_RDWR, true
		}
		return flags | os.O_WRONLY, true
	}
	return 0, false
}

// open(path, mode) returns a file handle, or null when the open fails.
func (l *Lib) fileOpen(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "open") {
		return interp.Null()
	}
	if args[0].Kind != interp.KindString || args[1].Kind != interp.KindString {
		l.rep.Report(diagnostics.Runtime,
			"open() expects strings for path and mode.", "")
		return interp.Null()
	}

	flags, ok := modeFlags(args[1].Str)
	if !ok {
		return interp.Null()
	}
	f, err := os.OpenFile(args[0].Str, flags, 0o644)
	if err != nil {
		return interp.Null()
	}
	return interp.FileVal(&interp.FileHandle{F: f, Path: args[0].Str})
}

// close marks the shared handle closed so every alias sees it.
func (l *Lib) fileClose(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "close") {
		return interp.Null()
	}
	if h := args[0].File; h.Open() {
		h.F.Close()
		h.F = nil
	}
	return interp.Null()
}

// read returns the whole file as one string, reading from the start.
func (l *Lib) fileRead(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "read") {
		return interp.Null()
	}
	h := args[0].File
	if !h.Open() {
		return interp.Null()
	}
	if _, err := h.F.Seek(0, io.SeekStart); err != nil {
		return interp.Null()
	}
	data, err := io.ReadAll(h.F)
	if err != nil {
		return interp.Null()
	}
	return interp.StrVal(string(data))
}

// read_line returns the next line without its trailing newline, or null at
// end of file. Reads advance one byte at a time so the handle's offset stays
// exact for interleaved read and write calls.
func (l *Lib) fileReadLine(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "read_line") {
		return interp.Null()
	}
	h := args[0].File
	if !h.Open() {
		return interp.Null()
	}

	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := h.F.Read(buf)
		if n > 0 {
			line = append(line, buf[0])
			if buf[0] == '\n' {
				break
			}
			continue
		}
		if err != nil {
			if len(line) == 0 {
				return interp.Null()
			}
			break
		}
	}
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return interp.StrVal(string(line))
}

// write stringifies any value and reports success as a boolean.
func (l *Lib) fileWrite(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 2, "write") {
		return interp.Null()
	}
	h := args[0].File
	if !h.Open() {
		l.rep.Report(diagnostics.Runtime,
			"write() called on invalid file handle.", "")
		return interp.Null()
	}
	_, err := h.F.WriteString(args[1].String())
	return interp.BoolVal(err == nil)
}

func (l *Lib) fileExists(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "file_exists") {
		return interp.Null()
	}
	if args[0].Kind != interp.KindString {
		return interp.BoolVal(false)
	}
	f, err := os.Open(args[0].Str)
	if err != nil {
		return interp.BoolVal(false)
	}
	f.Close()
	return interp.BoolVal(true)
}

func (l *Lib) fileRemove(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "remove_file") {
		return interp.Null()
	}
	if args[0].Kind != interp.KindString {
		return interp.BoolVal(false)
	}
	return interp.BoolVal(os.Remove(args[0].Str) == nil)
}

func (l *Lib) fileFlush(args []interp.Value) interp.Value {
	if !l.checkArgs(args, 1, "flush") {
		return interp.Null()
	}
	if h := args[0].File; h.Open() {
		h.F.Sync()
	}
	return interp.Null()
}
