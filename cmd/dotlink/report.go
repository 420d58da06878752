package dotlink

import (
	"fmt"
	"io"
	"sort"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/style"
)

// ReportError prints err for the user. Fatal errors, and any error at -v,
// also list their details and where the log file is.
func ReportError(w io.Writer, err error, verbose bool) {
	fmt.Fprintln(w, style.ErrorStyle.Render("Error: "+errors.Message(err)))
	if !verbose && !errors.IsFatal(err) {
		return
	}

	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for key := range details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintln(w, style.MutedStyle.Render(fmt.Sprintf("  %s: %v", key, details[key])))
	}
	fmt.Fprintln(w, style.MutedStyle.Render(fmt.Sprintf(MsgLogFileHint, logging.LogFilePath())))
}
