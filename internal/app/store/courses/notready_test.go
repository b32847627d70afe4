package coursestore_test

import (
	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/mongo"
)

type notReady struct{}

func (notReady) Database() (*mongo.Database, error) { return nil, apperr.ErrNotReady }
