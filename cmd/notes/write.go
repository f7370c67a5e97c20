package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notes/pkg/core"
	"github.com/aretw0/notes/pkg/validation"
)

// formFields is the order in which form errors are reported.
var formFields = []string{"id", "title", "description", "category"}

// formError lists the messages the note form would show, one per field.
type formError map[string]string

func (e formError) Error() string {
	lines := make([]string, 0, len(e))
	for _, field := range formFields {
		if msg, ok := e[field]; ok {
			lines = append(lines, field+": "+msg)
		}
	}
	return strings.Join(lines, "\n")
}

// noteFlags are the form fields shared by create and update.
type noteFlags struct {
	title       string
	description string
	category    string
}

func (f *noteFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Note title")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Note description")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category (Personal, Work, Ideas, Todo, Other)")
}

func newCreateCmd(c *cli) *cobra.Command {
	var f noteFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dto := core.CreateNote{
				Title:       f.title,
				Description: f.description,
				Category:    core.Category(f.category),
			}
			if err := checkForm(dto.Title, dto.Description, validation.CheckCreate(dto)); err != nil {
				return err
			}

			ctx := cmd.Context()
			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			note, err := app.Store.Create(ctx, dto)
			if err != nil {
				return failed("Failed to create note", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Note created successfully")
			fmt.Fprintln(out, note.ID)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func newUpdateCmd(c *cli) *cobra.Command {
	var f noteFlags
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a note",
		Long:  `Update replaces the given fields of a note. Fields left out keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			current, err := app.Store.Fetch(ctx, args[0])
			if err != nil {
				return failed("Failed to update note", err)
			}

			dto := mergeUpdate(current, cmd, f)
			if err := checkForm(dto.Title, dto.Description, validation.CheckUpdate(dto)); err != nil {
				return err
			}

			if _, err := app.Store.Update(ctx, dto); err != nil {
				return failed("Failed to update note", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Note updated successfully")
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

// mergeUpdate starts from the current note and applies only the flags the
// user set, so an empty --title still reaches validation.
func mergeUpdate(current core.Note, cmd *cobra.Command, f noteFlags) core.UpdateNote {
	dto := core.UpdateNote{
		ID:          current.ID,
		Title:       current.Title,
		Description: current.Description,
		Category:    current.Category,
	}
	if cmd.Flags().Changed("title") {
		dto.Title = f.title
	}
	if cmd.Flags().Changed("description") {
		dto.Description = f.description
	}
	if cmd.Flags().Changed("category") {
		dto.Category = core.Category(f.category)
	}
	return dto
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := c.openApp(ctx)
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.Delete(ctx, args[0]); err != nil {
				return failed("Failed to delete note", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Note deleted successfully")
			return nil
		},
	}
}

// checkForm collects the field messages the note form shows, then fills in
// schema messages for fields the form left clean. It returns a formError
// when anything is invalid.
func checkForm(title, description string, schemaErr error) error {
	v := validation.New(validation.Static(title), validation.Static(description))
	defer v.Close()
	v.MarkAllDirty()

	messages := formError(v.Errors().Map())
	var fieldErrs validation.FieldErrors
	if errors.As(schemaErr, &fieldErrs) {
		for _, fe := range fieldErrs {
			if _, ok := messages[fe.Field]; !ok {
				messages[fe.Field] = fe.Message
			}
		}
	} else if schemaErr != nil {
		return failed("Validation failed", schemaErr)
	}
	if len(messages) == 0 {
		return nil
	}
	return messages
}
