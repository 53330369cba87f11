package entity

import (
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
)

// decodeFields maps a stored record onto a struct using its firestore tags.
// Timestamps arrive as time.Time from Firestore and as RFC 3339 strings from JSONB.
func decodeFields(fields map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "firestore",
		WeaklyTypedInput: true,
		Result:           out,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeHookFunc(time.RFC3339Nano),
		),
	})
	if err != nil {
		return errors.Wrap(err, "failed to build record decoder")
	}

	if err := decoder.Decode(fields); err != nil {
		return errors.Wrap(err, "failed to decode record")
	}

	return nil
}

func putIfSet(fields map[string]any, key, value string) {
	if value != "" {
		fields[key] = value
	}
}
