package logger

import (
	"io"
	"log"
	"os"
)

// Log discards output until Init is called, so packages can log unconditionally.
var Log = log.New(io.Discard, "", log.LstdFlags)

func Init(logFilePath string) error {
	file, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}

	Log = log.New(file, "", log.LstdFlags)
	Log.Println("Logger initialized.")
	return nil
}

// SetOutput redirects the run log, e.g. to a test buffer.
func SetOutput(w io.Writer) {
	Log = log.New(w, "", log.LstdFlags)
}
