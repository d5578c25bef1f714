package command

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	sizeFlagRegex = regexp.MustCompile(`--size\s+(512|768|1024)`)
	seedFlagRegex = regexp.MustCompile(`--seed\s+(\d+)`)
	negFlagRegex  = regexp.MustCompile(`--no\s+([^\n]+)`)
)

// splits a message like "/image@SurferBot a cat --size 512" into the command
// name and its arguments; ok is false when the text is not a command
func parseCommand(text string) (name string, args []string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", nil, false
	}

	name = strings.TrimPrefix(fields[0], "/")

	// group chats suffix commands with the bot's username
	if at := strings.Index(name, "@"); at >= 0 {
		name = name[:at]
	}

	if name == "" {
		return "", nil, false
	}

	return strings.ToLower(name), fields[1:], true
}

// imageArgs is the parsed form of an /image invocation.
type imageArgs struct {
	Prompt   string
	Size     string
	Seed     int
	Negative string
}

// extracts the --size, --seed, and --no flags from an /image argument list;
// whatever remains is the prompt
func parseImageArgs(args []string) imageArgs {
	text := strings.Join(args, " ")

	var parsed imageArgs

	if m := sizeFlagRegex.FindStringSubmatch(text); m != nil {
		parsed.Size = m[1]
		text = sizeFlagRegex.ReplaceAllString(text, "")
	}

	if m := seedFlagRegex.FindStringSubmatch(text); m != nil {
		parsed.Seed, _ = strconv.Atoi(m[1])
		text = seedFlagRegex.ReplaceAllString(text, "")
	}

	if m := negFlagRegex.FindStringSubmatch(text); m != nil {
		parsed.Negative = strings.TrimSpace(m[1])
		text = negFlagRegex.ReplaceAllString(text, "")
	}

	parsed.Prompt = strings.TrimSpace(text)

	return parsed
}
