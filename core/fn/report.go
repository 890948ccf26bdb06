package fn

import (
	"fmt"

	"github.com/promptfunc/promptfunc/internal/utils"
)

const transcriptFormat = `SYSTEM PROMPT:
==============
%s

INPUT:
======
%s

RESPONSE:
=========
%s`

// transcript renders the full exchange of one attempt, wrapped for terminal
// readability. It is embedded in the final error when every attempt failed to
// parse, and logged at debug level when a transcript was requested.
func transcript(system, input, response string) string {
	return utils.WrapText(fmt.Sprintf(transcriptFormat, system, input, response), utils.DefaultWrapWidth)
}
