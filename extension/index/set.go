// set.go implements the "docdex set" command for explicit metadata edits.
//
// Design: only flags the user actually passed become edits, detected via
// Flags().Changed. An explicit empty value ("--status ''") clears the
// column. This is the one path that overwrites non-empty metadata; the
// scanner's extracted values only ever fill blanks.

package index

import (
	"fmt"
	"strconv"

	"github.com/jpl-au/docdex/cmd"
	"github.com/jpl-au/docdex/extension"
	"github.com/jpl-au/docdex/internal/log"
	"github.com/jpl-au/docdex/internal/store"
	"github.com/spf13/cobra"
)

func (e *Extension) newSetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "set <id> [ids...]",
		Short: "Set metadata fields on documents",
		Long: `Sets curated metadata fields on one or more documents.

  docdex set 42 --manufacturer Draeger --model Evita4
  docdex set 42 43 44 --status Superseded
  docdex set 42 --keywords ''            # clear a field

Omitted flags leave their fields untouched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runSet,
	}
	c.Flags().StringP(extension.FlagManufacturer, "m", "", "Manufacturer name")
	c.Flags().String(extension.FlagModel, "", "Device model")
	c.Flags().StringP(extension.FlagType, "t", "", "Document type")
	c.Flags().StringP(extension.FlagKeywords, "k", "", "Comma-separated keywords")
	c.Flags().String(extension.FlagRevisionNumber, "", "Document revision number")
	c.Flags().String(extension.FlagRevisionDate, "", "Document revision date")
	c.Flags().String(extension.FlagStatus, "", "Lifecycle status")
	c.Flags().String(extension.FlagApplicableModels, "", "Other applicable device models")
	c.Flags().String(extension.FlagTestEquipment, "", "Associated test equipment")
	return c
}

func (e *Extension) runSet(c *cobra.Command, args []string) error {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("invalid document id %q", a))
		}
		ids = append(ids, id)
	}

	var edits store.FieldEdits
	pick := func(flag string, dst **string) {
		if c.Flags().Changed(flag) {
			v, _ := c.Flags().GetString(flag)
			*dst = &v
		}
	}
	pick(extension.FlagManufacturer, &edits.Manufacturer)
	pick(extension.FlagModel, &edits.DeviceModel)
	pick(extension.FlagType, &edits.DocumentType)
	pick(extension.FlagKeywords, &edits.Keywords)
	pick(extension.FlagRevisionNumber, &edits.RevisionNumber)
	pick(extension.FlagRevisionDate, &edits.RevisionDate)
	pick(extension.FlagStatus, &edits.Status)
	pick(extension.FlagApplicableModels, &edits.ApplicableModels)
	pick(extension.FlagTestEquipment, &edits.AssociatedTestEquipment)

	if edits.Empty() {
		return cmd.PrintJSONError(fmt.Errorf("no fields to set (see 'docdex set --help')"))
	}

	n, err := e.svc.SetFields(c.Context(), ids, edits)

	l := log.Event("set", "edit").Author(cmd.Author()).Detail("updated", n)
	if len(ids) == 1 {
		l.Doc(ids[0])
	}
	l.Write(err)

	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("set fields: %w", err))
	}

	if cmd.JSON() {
		return cmd.PrintJSON(map[string]any{"ids": ids, "updated": n})
	}
	fmt.Fprintf(cmd.Out(), "Updated %d document(s)\n", n)
	return nil
}
