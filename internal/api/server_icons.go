package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dgnsrekt/favicond/internal/icons"
)

func registerIconHandlers(api huma.API, svc Service) {
	type manifestOutput struct {
		Body icons.Manifest
	}

	huma.Register(api, huma.Operation{OperationID: "get-current-icons", Method: http.MethodGet, Path: "/api/v1/icons", Summary: "Scan the current entry's icon directory", Tags: []string{"Icons"}},
		func(ctx context.Context, input *struct{}) (*manifestOutput, error) {
			m, err := svc.CurrentIcons(ctx)
			if err != nil {
				return nil, mapErr(err)
			}
			return &manifestOutput{Body: m}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "resolve-icons", Method: http.MethodGet, Path: "/api/v1/icons/resolve", Summary: "Scan an icon directory", Tags: []string{"Icons"}},
		func(ctx context.Context, input *struct {
			IconPath string `query:"icon_path" required:"true" example:"/local/favicons/" doc:"Frontend-relative icon directory"`
		}) (*manifestOutput, error) {
			m, err := svc.ResolveIcons(ctx, input.IconPath)
			if err != nil {
				return nil, mapErr(err)
			}
			return &manifestOutput{Body: m}, nil
		})
}
