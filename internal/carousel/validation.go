package carousel

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks field presence and the storage length limits.
func (i Item) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.ImageID, validation.Required.ErrorObject(
			validation.NewError("carousel.item.image_required", "image is required"))),
		validation.Field(&i.ImageAlt, validation.RuneLength(0, StringMaxLength)),
		validation.Field(&i.ImageTitle, validation.RuneLength(0, StringMaxLength)),
		validation.Field(&i.ImageLink, validation.RuneLength(0, StringMaxLength)),
		validation.Field(&i.CaptionTitle, validation.RuneLength(0, CaptionTitleMaxLength)),
		validation.Field(&i.CaptionText, validation.RuneLength(0, StringMaxLength)),
		validation.Field(&i.Weight, validation.Min(0)),
		validation.Field(&i.Status, validation.In(StatusInactive, StatusActive).ErrorObject(
			validation.NewError("carousel.item.status_invalid", ErrStatusInvalid.Error()))),
	)
}

// ValidateWith checks settings; styles lists the image styles the host
// can derive besides the original upload.
func (s Settings) ValidateWith(styles map[string]string) error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Interval, validation.Min(0)),
		validation.Field(&s.ImageType, validation.Required,
			validation.In(ImageTypeDefault, ImageTypeFluid, ImageTypeCircle)),
		validation.Field(&s.ImageStyle, validation.By(func(value any) error {
			style, _ := value.(string)
			style = strings.TrimSpace(style)
			if style == "" || style == OriginalImageStyle {
				return nil
			}
			if _, ok := styles[style]; ok {
				return nil
			}
			return validation.NewError("carousel.settings.image_style_unknown", ErrImageStyleUnknown.Error())
		})),
	)
}
