package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

// decodeInput reads the JSON document in file name, or stdin for "-", and
// decodes it into v. A non empty selector is a jsonpath expression picking the
// part of the document to decode.
func decodeInput(name, selector string, v any) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return fmt.Errorf("opening input: %w", err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading input %q: %w", name, err)
	}
	return decodeJSON(data, selector, v)
}

func decodeJSON(data []byte, selector string, v any) error {
	if selector != "" {
		var jobj any
		if err := json.Unmarshal(data, &jobj); err != nil {
			return fmt.Errorf("parsing input: %w", err)
		}
		jval, err := jsonpath.Get(selector, jobj)
		if err != nil {
			return fmt.Errorf("selecting %q: %w", selector, err)
		}
		if data, err = json.Marshal(jval); err != nil {
			return fmt.Errorf("selecting %q: %w", selector, err)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decoding input: %w", err)
	}
	return nil
}

// optionalFloat is a float flag that knows whether it was set.
type optionalFloat struct {
	value float64
	set   bool
}

func (o *optionalFloat) String() string {
	if o == nil || !o.set {
		return ""
	}
	return strconv.FormatFloat(o.value, 'f', -1, 64)
}

func (o *optionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	o.value, o.set = v, true
	return nil
}

// or returns the flag value if set, fallback otherwise.
func (o optionalFloat) or(fallback float64) float64 {
	if o.set {
		return o.value
	}
	return fallback
}

// emit prints the result as markdown, or as JSON when -json is set.
func emit(md string, result any) subcommands.ExitStatus {
	if !*jsonOutput {
		printMarkdown(md)
		return subcommands.ExitSuccess
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding result: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
