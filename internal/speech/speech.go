// Package speech renders errors and confirmations as short speakable
// sentences for the voice channel.
package speech

import (
	"fmt"

	"vtask/internal/apierr"
)

// FormatError translates a failed API call into a short spoken sentence
// naming the operation, e.g. "creating your task". Classification comes from
// the error's kind tag, never from its message text.
func FormatError(err error, operation string) string {
	switch apierr.KindOf(err) {
	case apierr.KindNetwork:
		return fmt.Sprintf("I'm having trouble reaching the task service while %s. Please try again in a moment.", operation)
	case apierr.KindTimeout:
		return fmt.Sprintf("The task service took too long while %s. Please try again.", operation)
	case apierr.KindServer:
		return fmt.Sprintf("The task service had a problem while %s. Please try again shortly.", operation)
	case apierr.KindClient:
		if apierr.StatusOf(err) == 404 {
			return fmt.Sprintf("I couldn't find what you asked for while %s.", operation)
		}
		return fmt.Sprintf("That request wasn't accepted while %s. Could you rephrase it?", operation)
	default:
		return fmt.Sprintf("Something went wrong while %s. Please try again.", operation)
	}
}

// CountTasks renders a task count for the listing tool. Content is shown on
// the paired visual surface, so only the count is spoken.
func CountTasks(n int, filtered bool) string {
	noun := "tasks"
	if n == 1 {
		noun = "task"
	}
	if filtered {
		if n == 0 {
			return "I didn't find any matching tasks."
		}
		return fmt.Sprintf("I found %d matching %s.", n, noun)
	}
	if n == 0 {
		return "You have no tasks."
	}
	return fmt.Sprintf("You have %d %s.", n, noun)
}
