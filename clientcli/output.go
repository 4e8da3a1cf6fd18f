package clientcli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formatter formats results for output.
type Formatter interface {
	FormatList(w io.Writer, result *ListResult) error
	FormatWrite(w io.Writer, result *WriteResult) error
	FormatDelete(w io.Writer, results []DeleteResult) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatList formats list results as a two column table.
func (f *HumanFormatter) FormatList(w io.Writer, result *ListResult) error {
	if len(result.Items) == 0 {
		_, _ = fmt.Fprintln(w, "No todos found")
		return nil
	}

	maxIDLen := 2 // "ID"
	for i := range result.Items {
		if len(result.Items[i].ID) > maxIDLen {
			maxIDLen = len(result.Items[i].ID)
		}
	}

	_, _ = fmt.Fprintf(w, "%-*s  %s\n", maxIDLen, "ID", "TITLE")
	_, _ = fmt.Fprintf(w, "%s  %s\n", strings.Repeat("-", maxIDLen), strings.Repeat("-", 30))

	for i := range result.Items {
		item := &result.Items[i]
		_, _ = fmt.Fprintf(w, "%-*s  %s\n", maxIDLen, item.ID, item.Title)
	}

	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "\n%d todo(s)\n", len(result.Items))
	}

	return nil
}

// FormatWrite formats a create or update result as human-readable text.
func (f *HumanFormatter) FormatWrite(w io.Writer, result *WriteResult) error {
	if f.Quiet {
		return nil
	}
	if result.ID != "" {
		_, _ = fmt.Fprintf(w, "%s: %s\n", result.Message, result.ID)
	} else {
		_, _ = fmt.Fprintln(w, result.Message)
	}
	_, _ = fmt.Fprintf(w, "  Title: %s\n", result.Title)
	return nil
}

// FormatDelete formats delete results as human-readable text.
func (f *HumanFormatter) FormatDelete(w io.Writer, results []DeleteResult) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			_, _ = fmt.Fprintf(w, "Error: %s - %v\n", r.ID, r.Err)
			continue
		}
		if !f.Quiet {
			_, _ = fmt.Fprintf(w, "Deleted: %s\n", r.ID)
		}
	}
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// FormatProfileList formats a list of profiles as human-readable text.
func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	maxNameLen := 4     // "NAME"
	maxEndpointLen := 8 // "ENDPOINT"
	for i := range profiles {
		if len(profiles[i].Name) > maxNameLen {
			maxNameLen = len(profiles[i].Name)
		}
		if len(profiles[i].Endpoint) > maxEndpointLen {
			maxEndpointLen = len(profiles[i].Endpoint)
		}
	}
	if maxNameLen > 20 {
		maxNameLen = 20
	}
	if maxEndpointLen > 50 {
		maxEndpointLen = 50
	}

	_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %s\n", maxNameLen, "NAME", maxEndpointLen, "ENDPOINT", "PREFIX")
	_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", maxEndpointLen), strings.Repeat("-", 10))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		name := p.Name
		if len(name) > maxNameLen {
			name = name[:maxNameLen-3] + "..."
		}

		endpoint := p.Endpoint
		if len(endpoint) > maxEndpointLen {
			endpoint = endpoint[:maxEndpointLen-3] + "..."
		}

		_, _ = fmt.Fprintf(w, "%s %-*s  %-*s  %s\n", marker, maxNameLen, name, maxEndpointLen, endpoint, displayPrefix(p.Prefix))
	}

	return nil
}

// FormatProfileShow formats a single profile as human-readable text.
func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	_, _ = fmt.Fprintf(w, "Name:     %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Endpoint: %s\n", profile.Endpoint)
	_, _ = fmt.Fprintf(w, "Prefix:   %s\n", displayPrefix(profile.Prefix))
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatList formats list results as JSON.
func (f *JSONFormatter) FormatList(w io.Writer, result *ListResult) error {
	return writeJSON(w, result)
}

// FormatWrite formats a create or update result as JSON.
func (f *JSONFormatter) FormatWrite(w io.Writer, result *WriteResult) error {
	return writeJSON(w, result)
}

// FormatDelete formats delete results as JSON.
func (f *JSONFormatter) FormatDelete(w io.Writer, results []DeleteResult) error {
	type jsonResult struct {
		ID      string `json:"id"`
		Deleted bool   `json:"deleted"`
		Error   string `json:"error,omitempty"`
	}

	output := make([]jsonResult, len(results))
	for i := range results {
		r := &results[i]
		output[i] = jsonResult{
			ID:      r.ID,
			Deleted: r.Deleted,
		}
		if r.Err != nil {
			output[i].Error = r.Err.Error()
		}
	}

	return writeJSON(w, output)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

type jsonProfile struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Prefix   string `json:"prefix,omitempty"`
	Default  bool   `json:"default"`
}

// FormatProfileList formats a list of profiles as JSON.
func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		p := &profiles[i]
		output.Profiles[i] = jsonProfile{
			Name:     p.Name,
			Endpoint: p.Endpoint,
			Prefix:   p.Prefix,
			Default:  p.Name == defaultName,
		}
	}

	return writeJSON(w, output)
}

// FormatProfileShow formats a single profile as JSON.
func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	return writeJSON(w, jsonProfile{
		Name:     profile.Name,
		Endpoint: profile.Endpoint,
		Prefix:   profile.Prefix,
		Default:  isDefault,
	})
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func displayPrefix(prefix string) string {
	if prefix == "" {
		return "(none)"
	}
	return prefix
}
