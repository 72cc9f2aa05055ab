package models

import (
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator wires the checks that plain tags cannot express: the
// 52-value Yargıtay chamber set and the Bedesten chamber filter, whose
// valid values depend on the archive being searched.
func newValidator() *validator.Validate {
	v := validator.New()
	chambers := stringSet(YargitayChambers())
	_ = v.RegisterValidation("yargitay_chamber", func(fl validator.FieldLevel) bool {
		_, ok := chambers[fl.Field().String()]
		return ok
	})
	v.RegisterStructValidation(validateBedestenChamber, BedestenSearchData{})
	return v
}

func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// validateBedestenChamber rejects a birimAdi that is not a chamber of
// the archive being searched. Only the Yargıtay and Danıştay archives
// carry chamber filters.
func validateBedestenChamber(sl validator.StructLevel) {
	data := sl.Current().Interface().(BedestenSearchData)
	if data.BirimAdi == "" {
		return
	}
	for _, itemType := range data.ItemTypeList {
		var chambers []string
		switch itemType {
		case BedestenItemTypeYargitay:
			chambers = YargitayChambers()
		case BedestenItemTypeDanistay:
			chambers = BedestenDanistayChambers()
		}
		for _, chamber := range chambers {
			if chamber == data.BirimAdi {
				return
			}
		}
	}
	sl.ReportError(data.BirimAdi, "birimAdi", "BirimAdi", "bedesten_chamber", "")
}

// Validate checks the validation tags on a request struct and reports
// failures as invalid-input errors attributed to the given source.
func Validate(source string, v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return &Error{Kind: KindInvalidInput, Source: source, Op: "validate", Err: err}
	}
	return nil
}
