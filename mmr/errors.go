package mmr

import "errors"

var errLeafOutOfRange = errors.New("mmr: leaf index out of range")
