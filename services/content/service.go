package content

import (
	"context"
	"fmt"

	"github.com/lulab/website-backend/lib/myerrors"
	"github.com/lulab/website-backend/lib/mylog"
	"github.com/lulab/website-backend/lib/mystore"
	"github.com/lulab/website-backend/lib/mytime"
)

type service struct {
	bootcampStore mystore.Store[Bootcamp]
	trainingStore mystore.Store[Training]
	nower         mytime.Nower
	logger        mylog.Logger
}

func newService(bootcampStore mystore.Store[Bootcamp], trainingStore mystore.Store[Training], nower mytime.Nower) *service {
	return &service{
		bootcampStore: bootcampStore,
		trainingStore: trainingStore,
		nower:         nower,
		logger:        mylog.New("content"),
	}
}

// seed fills empty stores with the catalog. Existing data is left alone so
// that a persistent store survives restarts.
func (s *service) seed(c context.Context) error {
	existing, err := s.bootcampStore.List(c)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error listing bootcamps: %s", err))
	}
	if len(existing) == 0 {
		for _, bootcamp := range seedBootcamps(s.nower.Now()) {
			err = s.bootcampStore.Put(c, bootcamp.UID, bootcamp)
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error seeding bootcamp %s: %s", bootcamp.UID, err))
			}
		}
	}

	existingTrainings, err := s.trainingStore.List(c)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error listing trainings: %s", err))
	}
	if len(existingTrainings) == 0 {
		for _, training := range seedTrainings(s.nower.Now()) {
			err = s.trainingStore.Put(c, training.UID, training)
			if err != nil {
				return myerrors.NewInternalError(fmt.Errorf("error seeding training %s: %s", training.UID, err))
			}
		}
	}

	return nil
}

func (s *service) listBootcamps(c context.Context, locale Locale) ([]bootcampView, error) {
	bootcamps, err := s.bootcampStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error listing bootcamps: %s", err))
	}

	views := []bootcampView{}
	for _, bootcamp := range bootcamps {
		views = append(views, toBootcampView(bootcamp, locale))
	}
	return views, nil
}

func (s *service) getBootcamp(c context.Context, uid string, locale Locale) (bootcampView, error) {
	bootcamp, exists, err := s.bootcampStore.Get(c, uid)
	if err != nil {
		return bootcampView{}, myerrors.NewInternalError(fmt.Errorf("error fetching bootcamp %s: %s", uid, err))
	}
	if !exists {
		return bootcampView{}, myerrors.NewNotFoundError(fmt.Errorf("bootcamp %s not found", uid))
	}
	return toBootcampView(bootcamp, locale), nil
}

func (s *service) getTraining(c context.Context, uid string, locale Locale) (trainingView, error) {
	training, exists, err := s.trainingStore.Get(c, uid)
	if err != nil {
		return trainingView{}, myerrors.NewInternalError(fmt.Errorf("error fetching training %s: %s", uid, err))
	}
	if !exists {
		return trainingView{}, myerrors.NewNotFoundError(fmt.Errorf("training %s not found", uid))
	}
	return toTrainingView(training, locale), nil
}

// sitemapLocations enumerates the static and catalog-driven URLs per locale.
func (s *service) sitemapLocations(c context.Context, baseURL string) ([]string, error) {
	bootcamps, err := s.bootcampStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error listing bootcamps: %s", err))
	}
	trainings, err := s.trainingStore.List(c)
	if err != nil {
		return nil, myerrors.NewInternalError(fmt.Errorf("error listing trainings: %s", err))
	}

	locations := []string{}
	for _, locale := range supportedLocales {
		prefix := baseURL + "/" + string(locale)
		locations = append(locations,
			prefix,
			prefix+"/about",
			prefix+"/bootcamp",
		)
		for _, bootcamp := range bootcamps {
			locations = append(locations, prefix+"/bootcamp/"+bootcamp.UID)
		}
		for _, training := range trainings {
			locations = append(locations, prefix+"/training/"+training.UID)
		}
	}
	return locations, nil
}

func toBootcampView(bootcamp Bootcamp, locale Locale) bootcampView {
	return bootcampView{
		UID:          bootcamp.UID,
		Title:        bootcamp.Title.In(locale),
		Tagline:      bootcamp.Tagline.In(locale),
		PriceInCents: bootcamp.PriceInCents,
		Currency:     bootcamp.Currency,
		ResourceID:   bootcamp.GoodsResourceID,
	}
}

func toTrainingView(training Training, locale Locale) trainingView {
	return trainingView{
		UID:          training.UID,
		Title:        training.Title.In(locale),
		Description:  training.Description.In(locale),
		PriceInCents: training.PriceInCents,
		Currency:     training.Currency,
		ResourceID:   training.GoodsResourceID,
	}
}
