package model

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	json "github.com/json-iterator/go"
)

type Decoder interface {
	Decode(ctx *gin.Context) error
	Validate() error
}

func Decode(ctx *gin.Context, decoder Decoder) error {
	if err := decoder.Decode(ctx); err != nil {
		return err
	}
	return decoder.Validate()
}

// decodeJSON treats an empty body as an empty object.
func decodeJSON(ctx *gin.Context, v any) error {
	err := json.NewDecoder(ctx.Request.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
