package handler

import (
	"io"
	"net/http"

	deliverycontext "pharmanet/internal/delivery/context"
	"pharmanet/internal/domain/entity"
	domainerrors "pharmanet/internal/domain/errors"
	"pharmanet/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

func principalFrom(c echo.Context) (entity.Principal, error) {
	principal, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return entity.Principal{}, domainerrors.ErrUnauthorized.WrapMessage("principal missing from context")
	}

	return principal, nil
}

// readImage loads an optional multipart file. It reads at most maxBytes+1
// bytes so oversized uploads are still rejected by the size check downstream.
func readImage(c echo.Context, field string, maxBytes int64) (*usecase.ImageUpload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}

		return nil, domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	file, err := fh.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded file")
	}

	return &usecase.ImageUpload{FileName: fh.Filename, Data: data}, nil
}

// bindAndValidate decodes the request into dst and checks its tags.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request body")
	}

	return c.Validate(dst)
}
