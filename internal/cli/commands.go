// Copyright 2021 The ajax Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogama/ajax/form"
	"github.com/spf13/cobra"
)

func newGetCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "get URL",
		Short: "GET a URL and print the response body",
		Args:  exactlyOneURL,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := await(s, s.client.Get(args[0], s.progress))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), body)
			return err
		},
	}
}

func newJSONCmd(s *session) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "json URL",
		Short: "GET a URL and print the JSON response, or part of it",
		Long: `json issues a GET and parses the response body as JSON. With
--path, only the value at that gjson path is printed.`,
		Args: exactlyOneURL,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := await(s, s.client.GetJSON(args[0], s.progress))
			if err != nil {
				return err
			}
			if path != "" {
				doc = doc.Get(path)
				if !doc.Exists() {
					return fmt.Errorf("path %q not found", path)
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), doc.String())
			return err
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "gjson path to extract, e.g. items.0.name")
	return cmd
}

func newPostCmd(s *session) *cobra.Command {
	var data []string
	var raw string
	cmd := &cobra.Command{
		Use:   "post URL",
		Short: "POST a form and print the response body",
		Long: `post sends an application/x-www-form-urlencoded body. Give fields
with --data key=value (repeat a key to send a list) or a pre-encoded
body with --raw. With neither, an empty form is sent.`,
		Args: exactlyOneURL,
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload form.Payload
			if cmd.Flags().Changed("raw") {
				if len(data) > 0 {
					return usageError{errors.New("--raw and --data are mutually exclusive")}
				}
				payload = form.Raw(raw)
			} else {
				fields, err := parseFields(data)
				if err != nil {
					return usageError{err}
				}
				payload = fields
			}
			body, err := await(s, s.client.Post(args[0], payload, s.progress))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), body)
			return err
		},
	}
	cmd.Flags().StringArrayVarP(&data, "data", "d", nil, "Form field as key=value (repeatable)")
	cmd.Flags().StringVar(&raw, "raw", "", "Pre-encoded form body, sent verbatim")
	return cmd
}

// parseFields turns key=value arguments into form fields, in order of
// first appearance. A key given more than once becomes a list.
func parseFields(args []string) (form.Fields, error) {
	fields := form.Fields{}
	index := make(map[string]int)
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid --data %q (want key=value)", arg)
		}
		i, seen := index[k]
		if !seen {
			index[k] = len(fields)
			fields = fields.Add(k, v)
			continue
		}
		switch prev := fields[i].Value.(type) {
		case string:
			fields[i].Value = []string{prev, v}
		case []string:
			fields[i].Value = append(prev, v)
		}
	}
	return fields, nil
}
