package product

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrCodeTaken       = errors.New("product code already in use")
)
