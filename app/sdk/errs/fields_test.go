package errs_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nexorahq/nexora/app/sdk/errs"
	"github.com/nexorahq/nexora/business/sdk/web"
)

// Handlers return field errors directly to the web framework.
var _ web.Encoder = errs.FieldErrors{}

func Test_FieldErrors_Encode(t *testing.T) {
	fe := errs.NewFieldErrors("page", errors.New("must be a number"))
	fe.Add("rows", errors.New("exceeds the maximum"))

	data, contentType, err := fe.Encode()
	if err != nil {
		t.Fatalf("encoding field errors: %s", err)
	}

	if contentType != "application/json" {
		t.Errorf("got content type %q, want application/json", contentType)
	}

	want := `[{"field":"page","error":"must be a number"},{"field":"rows","error":"exceeds the maximum"}]`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("encoded payload mismatch. diff:\n%s", diff)
	}

	if status := fe.HTTPStatus(); status != http.StatusUnprocessableEntity {
		t.Errorf("got status %d, want %d", status, http.StatusUnprocessableEntity)
	}
}

func Test_FieldErrors_NewErrorClassification(t *testing.T) {
	fe := errs.NewFieldErrors("name", errors.New("missing"))

	appErr := errs.NewError(fe)

	if appErr.Code != errs.InvalidArgument {
		t.Errorf("got code %v, want %v", appErr.Code, errs.InvalidArgument)
	}

	if appErr.Message != fe.Error() {
		t.Errorf("got message %q, want %q", appErr.Message, fe.Error())
	}
}
