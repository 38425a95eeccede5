package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/pr-poehali-dev/internal-employee-app/internal/model"

	"github.com/spf13/cobra"
)

func newInvokeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "invoke",
		Short: "Answer one request envelope read from stdin",
		Long: `Reads {"httpMethod", "queryStringParameters", "headers", "body"} from
stdin and writes {"statusCode", "headers", "body", "isBase64Encoded"} to
stdout. Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var req model.Request
			if err := decodeEnvelope(cmd.InOrStdin(), &req); err != nil {
				return err
			}

			a, err := newApp(os.Stderr)
			if err != nil {
				return err
			}
			defer a.close()

			resp := a.handlers.Action.Dispatch(cmd.Context(), &req)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resp)
		},
	}
}

func decodeEnvelope(r io.Reader, req *model.Request) error {
	if err := json.NewDecoder(r).Decode(req); err != nil {
		return fmt.Errorf("decode request envelope: %w", err)
	}
	return nil
}
