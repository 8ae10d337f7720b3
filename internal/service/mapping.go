package service

import (
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"
)

func mapProduct(p model.ProductRequest) dto.ProductResponse {
	return dto.ProductResponse{
		ID:                   p.ID.String(),
		PatientName:          p.PatientName,
		PatientLastname:      p.PatientLastname,
		ProductType:          p.ProductType,
		Forefoot:             p.Forefoot,
		AnteriorWedge:        p.AnteriorWedge,
		AnteriorWedgeMM:      p.AnteriorWedgeMM,
		MidfootArch:          p.MidfootArch,
		MidfootExternalWedge: p.MidfootExternalWedge,
		RearfootCalcaneus:    p.RearfootCalcaneus,
		HeelRaiseMM:          p.HeelRaiseMM,
		PosteriorWedge:       p.PosteriorWedge,
		PosteriorWedgeMM:     p.PosteriorWedgeMM,
		TemplateColor:        p.TemplateColor,
		TemplateSize:         p.TemplateSize,
	}
}

func mapOrder(o model.CustomerRequest) dto.OrderResponse {
	products := make([]dto.ProductResponse, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, mapProduct(p))
	}
	return dto.OrderResponse{
		ID:        o.ID.String(),
		Name:      o.Name,
		Lastname:  o.Lastname,
		Email:     o.Email,
		Phone:     o.Phone,
		Status:    o.Status,
		Notes:     o.Notes,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
		Products:  products,
	}
}

func toProductModel(in dto.ProductInput) model.ProductRequest {
	return model.ProductRequest{
		PatientName:          in.PatientName,
		PatientLastname:      in.PatientLastname,
		ProductType:          in.ProductType,
		Forefoot:             in.Forefoot,
		AnteriorWedge:        in.AnteriorWedge,
		AnteriorWedgeMM:      in.AnteriorWedgeMM,
		MidfootArch:          in.MidfootArch,
		MidfootExternalWedge: in.MidfootExternalWedge,
		RearfootCalcaneus:    in.RearfootCalcaneus,
		HeelRaiseMM:          in.HeelRaiseMM,
		PosteriorWedge:       in.PosteriorWedge,
		PosteriorWedgeMM:     in.PosteriorWedgeMM,
		TemplateColor:        in.TemplateColor,
		TemplateSize:         in.TemplateSize,
	}
}

func mapOption(o model.ProductOption) dto.ProductOptionResponse {
	return dto.ProductOptionResponse{
		ID:         o.ID.String(),
		Category:   o.Category,
		Label:      o.Label,
		Value:      o.Value,
		OrderIndex: o.OrderIndex,
		IsActive:   o.IsActive,
	}
}
