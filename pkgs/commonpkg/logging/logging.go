package logging

import (
	"io"

	"github.com/WangWilly/xConvo/pkgs/commonpkg/clients/xclient"
	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
)

////////////////////////////////////////////////////////////////////////////////

// InitLogger initializes the application logger with the specified configuration
func InitLogger(dbg bool, logFile io.Writer) {
	log.SetFormatter(&log.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})

	if dbg {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	if logFile != nil {
		log.AddHook(lfshook.NewHook(logFile, nil))
	}
}

////////////////////////////////////////////////////////////////////////////////

// NewClientLogger builds the logger the x client writes its request log to
func NewClientLogger(out io.Writer) *log.Logger {
	logger := log.New()
	logger.SetLevel(log.InfoLevel)
	logger.SetOutput(out)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
		DisableQuote:  true,
	})
	return logger
}

func SetXClientLogger(client *xclient.Client, out io.Writer) {
	client.SetLogger(NewClientLogger(out))
}
