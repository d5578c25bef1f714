package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{"simple", "/help", "help", []string{}, true},
		{"with args", "/image a surfing cat", "image", []string{"a", "surfing", "cat"}, true},
		{"bot mention", "/quota@SurferBot", "quota", []string{}, true},
		{"uppercase", "/HELP", "help", []string{}, true},
		{"not a command", "hello there", "", nil, false},
		{"empty", "", "", nil, false},
		{"bare slash", "/", "", nil, false},
		{"leading whitespace", "  /stats", "stats", []string{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, args, ok := parseCommand(tt.text)

			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, name)

			if tt.wantOK {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestParseImageArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want imageArgs
	}{
		{
			name: "plain prompt",
			args: []string{"a", "surfing", "cat"},
			want: imageArgs{Prompt: "a surfing cat"},
		},
		{
			name: "size flag",
			args: []string{"a", "cat", "--size", "512"},
			want: imageArgs{Prompt: "a cat", Size: "512"},
		},
		{
			name: "invalid size ignored",
			args: []string{"a", "cat", "--size", "640"},
			want: imageArgs{Prompt: "a cat --size 640"},
		},
		{
			name: "seed flag",
			args: []string{"a", "cat", "--seed", "42"},
			want: imageArgs{Prompt: "a cat", Seed: 42},
		},
		{
			name: "negative prompt takes the rest of the line",
			args: []string{"a", "cat", "--no", "blur,", "low", "quality"},
			want: imageArgs{Prompt: "a cat", Negative: "blur, low quality"},
		},
		{
			name: "all flags",
			args: []string{"a", "cat", "--size", "768", "--seed", "7", "--no", "watermark"},
			want: imageArgs{Prompt: "a cat", Size: "768", Seed: 7, Negative: "watermark"},
		},
		{
			name: "empty",
			args: nil,
			want: imageArgs{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseImageArgs(tt.args))
		})
	}
}
