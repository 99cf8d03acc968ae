// Package segments builds the VLAN to segment-name mapping from operator input.
package segments

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// PromptFunc supplies the segment name for a VLAN. The console implementation
// blocks on a line of interactive input; tests substitute a canned function.
type PromptFunc func(vlan int) (string, error)

// ConsolePrompter returns a PromptFunc that writes a prompt for each VLAN to
// out and reads one line of input from in.
func ConsolePrompter(in io.Reader, out io.Writer) PromptFunc {
	reader := bufio.NewReader(in)
	return func(vlan int) (string, error) {
		fmt.Fprintf(out, "  VLAN %d: Enter segment name: ", vlan)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return line, nil
	}
}

// Collect prompts once per distinct VLAN, in ascending numeric order, and
// returns the resulting mapping. Answers are trimmed of surrounding
// whitespace; an empty answer is accepted and maps the VLAN to "".
func Collect(vlans []int, prompt PromptFunc) (map[int]string, error) {
	ordered := make([]int, len(vlans))
	copy(ordered, vlans)
	sort.Ints(ordered)

	mapping := make(map[int]string, len(ordered))
	for _, vlan := range ordered {
		if _, done := mapping[vlan]; done {
			continue
		}
		name, err := prompt(vlan)
		if err != nil {
			return nil, fmt.Errorf("reading segment name for VLAN %d: %w", vlan, err)
		}
		mapping[vlan] = strings.TrimSpace(name)
	}
	return mapping, nil
}
