package validation

import (
	"testing"

	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/apierror"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/dto"
	"github.com/balrokstudio/plantilla-pedido-app-sub000/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validOrder() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		Name:     "Ana",
		Lastname: "Diaz",
		Email:    "ana@x.com",
		Products: []dto.ProductInput{{
			PatientName:       "Leo",
			ProductType:       "Every Day",
			RearfootCalcaneus: model.HeelRaiseOption,
			HeelRaiseMM:       strPtr("5mm"),
		}},
	}
}

func fields(errs []apierror.FieldError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestOrder_ValidSubmissionGetsDefaults(t *testing.T) {
	req := validOrder()
	require.Empty(t, Order(&req))

	p := req.Products[0]
	assert.Equal(t, model.NoneOption, p.Forefoot)
	assert.Equal(t, model.NoneOption, p.AnteriorWedge)
	assert.Equal(t, model.NoneOption, p.MidfootArch)
	assert.Equal(t, model.NoneOption, p.MidfootExternalWedge)
	assert.Equal(t, model.HeelRaiseOption, p.RearfootCalcaneus)
	assert.Equal(t, model.NoOption, p.PosteriorWedge)
	require.NotNil(t, p.HeelRaiseMM)
	assert.Equal(t, "5mm", *p.HeelRaiseMM)
}

func TestOrder_MissingEmail(t *testing.T) {
	req := validOrder()
	req.Email = "   "
	errs := Order(&req)
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "es obligatorio", errs[0].Message)
}

func TestOrder_NameTooShortAfterTrim(t *testing.T) {
	req := validOrder()
	req.Name = " A "
	assert.Contains(t, fields(Order(&req)), "name")
}

func TestOrder_InvalidEmailAndPhone(t *testing.T) {
	req := validOrder()
	req.Email = "not-an-email"
	req.Phone = strPtr("call me")
	assert.Equal(t, []string{"email", "phone"}, fields(Order(&req)))
}

func TestOrder_BlankPhoneIsOptional(t *testing.T) {
	req := validOrder()
	req.Phone = strPtr("  ")
	require.Empty(t, Order(&req))
	assert.Nil(t, req.Phone)
}

func TestOrder_EmptyProductList(t *testing.T) {
	req := validOrder()
	req.Products = nil
	errs := Order(&req)
	require.Len(t, errs, 1)
	assert.Equal(t, "products", errs[0].Field)
}

func TestOrder_ProductRequiredFieldsUseIndexedPath(t *testing.T) {
	req := validOrder()
	req.Products = append(req.Products, dto.ProductInput{PatientName: " "})
	assert.Equal(t, []string{"products[1].patient_name", "products[1].product_type"}, fields(Order(&req)))
}

func TestOrder_HeelRaiseRequiresUnlockingRearfoot(t *testing.T) {
	req := validOrder()
	req.Products[0].RearfootCalcaneus = "Cuña pronadora"
	errs := Order(&req)
	require.Len(t, errs, 1)
	assert.Equal(t, "products[0].heel_raise_mm", errs[0].Field)
	assert.Contains(t, errs[0].Message, "rearfoot_calcaneus")
}

func TestOrder_WedgeMillimetresNeedSelector(t *testing.T) {
	req := validOrder()
	req.Products[0].AnteriorWedgeMM = strPtr("3mm")
	req.Products[0].PosteriorWedge = model.NoOption
	req.Products[0].PosteriorWedgeMM = strPtr("2mm")
	assert.Equal(t,
		[]string{"products[0].anterior_wedge_mm", "products[0].posterior_wedge_mm"},
		fields(Order(&req)))
}

func TestOrder_WedgeMillimetresAcceptedWhenUnlocked(t *testing.T) {
	req := validOrder()
	req.Products[0].AnteriorWedge = "Cuña anterior interna"
	req.Products[0].AnteriorWedgeMM = strPtr("3mm")
	req.Products[0].PosteriorWedge = "Cuña posterior externa"
	req.Products[0].PosteriorWedgeMM = strPtr("2mm")
	assert.Empty(t, Order(&req))
}

func TestOrder_RejectsWholePayloadWithoutDefaults(t *testing.T) {
	req := validOrder()
	req.Email = ""
	require.NotEmpty(t, Order(&req))
	assert.Empty(t, req.Products[0].Forefoot)
}

func TestStruct_UpdateOrderStatus(t *testing.T) {
	bad := dto.UpdateOrderRequest{Status: strPtr("shipped")}
	errs := Struct(&bad)
	require.Len(t, errs, 1)
	assert.Equal(t, "status", errs[0].Field)

	ok := dto.UpdateOrderRequest{Status: strPtr(model.StatusCompleted)}
	assert.Empty(t, Struct(&ok))
}
