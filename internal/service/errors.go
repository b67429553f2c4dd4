package service

import "errors"

var ErrCollectionInProgress = errors.New("collection cycle already in progress")
