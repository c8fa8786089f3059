// Package log provides a leveled, variadic text logger that routes each
// statement to a primary sink and an optional file sink.
//
// # Basic Usage
//
//	log.Info("connected to", host, "port", port)
//	log.Error("read failed:", err)
//
// Arguments are rendered by package [format] and joined with the configured
// delimiter (a single space by default). Each leveled line starts with the
// header of its level:
//
//	[INFO] connected to example.com port 8080
//
// # Levels
//
// Levels are ordered [LevelNone] < [LevelError] < [LevelWarn] < [LevelInfo]
// < [LevelDebug] < [LevelTrace]. Each sink has a threshold; a message reaches
// a sink if its level is not [LevelNone] and is at most the threshold. The
// primary sink defaults to [LevelInfo] and the file sink to [LevelError].
//
// # Numeric Base and Precision
//
// A [format.Base] or [format.Precision] argument changes how the following
// numbers are rendered and prints nothing:
//
//	log.Debug("status", format.Hex, 255, format.Precision(4), 3.14159)
//	// [DEBUG] status ff 3.1416
//
// Both revert to decimal and two digits at the end of the statement unless
// the reset policy is disabled with [WithBaseReset].
//
// # Sinks
//
// The primary sink receives colorized lines when [WithColor] is enabled.
// The file sink receives plain lines and is flushed after every write when
// attached with auto-flush:
//
//	f, err := log.OpenFile("debug.log")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	log.AttachFile(f, true)
//
// [Print], [Println], [PrintFile] and [PrintlnFile] write to one sink
// unconditionally, with no header or color.
//
// # Assertions
//
// [Assert] reports a failed condition with its source location to every
// attached sink and then halts the calling goroutine forever, or calls the
// function installed with [WithHalt].
//
// # Environment
//
// The default router reads its initial configuration from DEBUGLOG_*
// environment variables; see [Env].
//
// # Concurrency
//
// A [Router] assumes a single producer and performs no locking. Use
// [NewHandler] to share a router between goroutines through [log/slog].
package log
