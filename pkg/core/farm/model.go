package farm

import (
	"encoding/json"

	"github.com/scienceol/osfarm/pkg/common"
)

type CreateFarmReq struct {
	Name     string          `json:"name"`
	Location *string         `json:"location"`
	Settings json.RawMessage `json:"settings" swaggertype:"object"`
}

type ListFarmReq struct {
	common.PageReq
	Name string `form:"name"`
}

type CreateFieldReq struct {
	Name  string  `json:"name"`
	Notes *string `json:"notes"`
}

type CreateCropReq struct {
	Name    string  `json:"name"`
	Variety *string `json:"variety"`
}
