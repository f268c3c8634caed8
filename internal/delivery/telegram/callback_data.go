package telegram

import (
	"errors"
	"strconv"
	"strings"
)

// Callback action constants.
const (
	actionStart   = "start"   // begin the first play-through
	actionRestart = "restart" // begin a new play-through
	actionAnswer  = "ans"     // pick an option (multiple, true/false)
	actionOrder   = "ord"     // append an item to the ordering draft
	actionLeft    = "ml"      // select a left-hand item of a match question
	actionRight   = "mr"      // pair the selected item with a right-hand target
	actionSubmit  = "sub"     // submit the ordering or matching draft
	actionClear   = "clr"     // discard the draft
	actionHint    = "hint"
	actionNext    = "next"
	actionRetry   = "retry"
)

var errInvalidCallback = errors.New("invalid callback data")

// callbackData represents structured callback data.
type callbackData struct {
	Action string
	Params []string
	Raw    string
}

// encode creates callback string.
func (cd callbackData) encode() string {
	if len(cd.Params) == 0 {
		return cd.Action
	}
	return cd.Action + ":" + strings.Join(cd.Params, ":")
}

// decodeCallback parses callback data string.
func decodeCallback(data string) callbackData {
	parts := strings.Split(data, ":")
	if len(parts) == 0 {
		return callbackData{Raw: data}
	}

	return callbackData{
		Action: parts[0],
		Params: parts[1:],
		Raw:    data,
	}
}

// quizCallback is a decoded button press. Position is the question the button was
// rendered for; Index is the option, item or target index, -1 when the action has none.
type quizCallback struct {
	Action   string
	Position int
	Index    int
}

// parseQuizCallback validates callback data against the parameters each action takes.
func parseQuizCallback(data string) (quizCallback, error) {
	cd := decodeCallback(data)
	cb := quizCallback{Action: cd.Action, Position: -1, Index: -1}

	var want int
	switch cd.Action {
	case actionStart, actionRestart:
		want = 0
	case actionSubmit, actionClear, actionHint, actionNext, actionRetry:
		want = 1
	case actionAnswer, actionOrder, actionLeft, actionRight:
		want = 2
	default:
		return cb, errInvalidCallback
	}

	if len(cd.Params) != want {
		return cb, errInvalidCallback
	}

	if want >= 1 {
		pos, err := strconv.Atoi(cd.Params[0])
		if err != nil || pos < 0 {
			return cb, errInvalidCallback
		}
		cb.Position = pos
	}
	if want == 2 {
		idx, err := strconv.Atoi(cd.Params[1])
		if err != nil || idx < 0 {
			return cb, errInvalidCallback
		}
		cb.Index = idx
	}

	return cb, nil
}

func buildCallback(action string) string {
	return callbackData{Action: action}.encode()
}

func buildPositionCallback(action string, position int) string {
	return callbackData{
		Action: action,
		Params: []string{strconv.Itoa(position)},
	}.encode()
}

func buildIndexCallback(action string, position, index int) string {
	return callbackData{
		Action: action,
		Params: []string{strconv.Itoa(position), strconv.Itoa(index)},
	}.encode()
}
