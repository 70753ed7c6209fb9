package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hpn/ai-gateway-client/internal/client"
	"github.com/hpn/ai-gateway-client/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// render prints r in the selected output format and returns errFailed for the
// error variant so the process exits non-zero.
func render[T any](cmd *cobra.Command, a *app, op string, r client.Result[T], text func(io.Writer, T)) error {
	w := cmd.OutOrStdout()

	switch a.output {
	case "json", "yaml":
		if err := writeStructured(w, a.output, r); err != nil {
			return err
		}
	default:
		if v, ok := r.Value(); ok {
			text(w, v)
		} else if e, ok := r.Err(); ok {
			ui.PrintError(w, op, e)
		}
	}

	if r.IsError() {
		return errFailed
	}
	return nil
}

// writeStructured encodes r as indented JSON or as YAML.
func writeStructured(w io.Writer, format string, r any) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	if format == "json" {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("converting result: %w", err)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}
