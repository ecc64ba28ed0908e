package order

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

// PhotoStage tags when a photo was taken.
type PhotoStage int

const (
	PhotoStageUnknown PhotoStage = iota
	// PhotoStageInitial is taken by the client before hand-over.
	PhotoStageInitial
	// PhotoStageReceived is taken by the receiving pickup point.
	PhotoStageReceived
	// PhotoStageDelivered is taken by the delivery pickup point at collection.
	PhotoStageDelivered
)

func getPhotoStageStrings() map[PhotoStage]string {
	return map[PhotoStage]string{
		PhotoStageUnknown:   "unknown",
		PhotoStageInitial:   "initial",
		PhotoStageReceived:  "received",
		PhotoStageDelivered: "delivered",
	}
}

// ParsePhotoStage converts a wire/storage name into a PhotoStage.
func ParsePhotoStage(s string) (PhotoStage, error) {
	for stage, name := range getPhotoStageStrings() {
		if stage != PhotoStageUnknown && name == s {
			return stage, nil
		}
	}
	return PhotoStageUnknown, errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%q is not a known photo stage", s))
}

func (s PhotoStage) Validate() error {
	if s <= PhotoStageUnknown || s > PhotoStageDelivered {
		return errs.NewValueIsInvalidErrorWithCause("stage", fmt.Errorf("%d is not a valid photo stage", s))
	}
	return nil
}

func (s PhotoStage) String() string {
	if str, ok := getPhotoStageStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ErrPhotoIsNotConstructed is returned for a Photo built without NewPhoto.
var ErrPhotoIsNotConstructed = errors.New("Photo must be created via NewPhoto constructor")

// Photo is an append-only reference to an image of the item. Only the URL is
// kept; the bytes live in external storage.
type Photo struct {
	id        kernel.UUID
	orderID   kernel.UUID
	stage     PhotoStage
	url       string
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewPhoto validates the photo attributes. url must be an absolute http(s) URL.
func NewPhoto(id, orderID kernel.UUID, stage PhotoStage, rawURL string, createdAt time.Time) (*Photo, error) {
	p := &Photo{createdAt: createdAt.UTC(), guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		p.setID(id),
		p.setOrderID(orderID),
		p.setStage(stage),
		p.setURL(rawURL),
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Photo) Validate() error {
	if p == nil {
		return ErrPhotoIsNotConstructed
	}
	return p.guard.Validate(ErrPhotoIsNotConstructed)
}

func (p *Photo) ID() kernel.UUID { return p.id }

func (p *Photo) OrderID() kernel.UUID { return p.orderID }

func (p *Photo) Stage() PhotoStage { return p.stage }

func (p *Photo) URL() string { return p.url }

func (p *Photo) CreatedAt() time.Time { return p.createdAt }

func (p *Photo) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Photo) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.orderID = id
	return nil
}

func (p *Photo) setStage(stage PhotoStage) error {
	if err := stage.Validate(); err != nil {
		return err
	}
	p.stage = stage
	return nil
}

func (p *Photo) setURL(rawURL string) error {
	if rawURL == "" {
		return errs.NewValueIsRequiredError("url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("url", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("url", errors.New("must be an absolute http(s) URL"))
	}
	p.url = rawURL
	return nil
}
