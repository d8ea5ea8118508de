package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dgnsrekt/favicond/internal/entry"
)

type entryBody struct {
	Title           string `json:"title" required:"true" minLength:"1" doc:"Text shown in the browser tab"`
	IconPath        string `json:"icon_path" required:"true" minLength:"1" example:"/local/favicons/" doc:"Frontend-relative icon directory"`
	LaunchIconColor string `json:"launch_icon_color,omitempty" example:"#18BCF2" doc:"Optional mask icon and theme color"`
}

func registerEntryHandlers(api huma.API, svc Service) {
	type entryOutput struct {
		Body entry.Entry
	}

	type listEntriesOutput struct {
		Body struct {
			Entries []entry.Entry `json:"entries"`
		}
	}

	type entryIDInput struct {
		EntryID string `path:"entry_id"`
	}

	huma.Register(api, huma.Operation{OperationID: "create-entry", Method: http.MethodPost, Path: "/api/v1/entries", Summary: "Create an entry (setup wizard)", Tags: []string{"Entries"}, DefaultStatus: http.StatusCreated},
		func(ctx context.Context, input *struct {
			Body entryBody
		}) (*entryOutput, error) {
			b := input.Body
			trimAll(&b.Title, &b.IconPath, &b.LaunchIconColor)
			e, err := svc.CreateEntry(ctx, b.Title, b.IconPath, b.LaunchIconColor)
			if err != nil {
				return nil, mapErr(err)
			}
			return &entryOutput{Body: e}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "list-entries", Method: http.MethodGet, Path: "/api/v1/entries", Summary: "List entries", Tags: []string{"Entries"}},
		func(ctx context.Context, input *struct{}) (*listEntriesOutput, error) {
			list, err := svc.ListEntries(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			out := &listEntriesOutput{}
			out.Body.Entries = list
			return out, nil
		})

	huma.Register(api, huma.Operation{OperationID: "get-current-entry", Method: http.MethodGet, Path: "/api/v1/entries/current", Summary: "Get the entry the page renders with", Tags: []string{"Entries"}},
		func(ctx context.Context, input *struct{}) (*entryOutput, error) {
			e, err := svc.CurrentEntry(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			return &entryOutput{Body: e}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "get-entry", Method: http.MethodGet, Path: "/api/v1/entries/{entry_id}", Summary: "Get entry by ID", Tags: []string{"Entries"}},
		func(ctx context.Context, input *entryIDInput) (*entryOutput, error) {
			e, err := svc.GetEntry(ctx, input.EntryID)
			if err != nil {
				return nil, mapErr(err)
			}
			return &entryOutput{Body: e}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "update-entry", Method: http.MethodPut, Path: "/api/v1/entries/{entry_id}", Summary: "Update entry options", Description: "Overwrites title and icon path; open pages are told to reload.", Tags: []string{"Entries"}},
		func(ctx context.Context, input *struct {
			EntryID string `path:"entry_id"`
			Body    entryBody
		}) (*entryOutput, error) {
			b := input.Body
			trimAll(&b.Title, &b.IconPath, &b.LaunchIconColor)
			e, err := svc.UpdateEntry(ctx, input.EntryID, b.Title, b.IconPath, b.LaunchIconColor)
			if err != nil {
				return nil, mapErr(err)
			}
			return &entryOutput{Body: e}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "delete-entry", Method: http.MethodDelete, Path: "/api/v1/entries/{entry_id}", Summary: "Remove an entry", Tags: []string{"Entries"}, DefaultStatus: http.StatusNoContent},
		func(ctx context.Context, input *entryIDInput) (*struct{}, error) {
			if err := svc.RemoveEntry(ctx, input.EntryID); err != nil {
				return nil, mapErr(err)
			}
			return nil, nil
		})
}
