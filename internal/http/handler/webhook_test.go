package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/The0mikkel/byceps/internal/http/handler"
	"github.com/The0mikkel/byceps/internal/model"
	"github.com/The0mikkel/byceps/internal/service"
	"github.com/The0mikkel/byceps/internal/store"
)

var _ = Describe("WebhookHandler", func() {
	var (
		router *gin.Engine
		svc    *mockWebhookService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockWebhookService{}
		h := handler.NewWebhookHandler(svc)
		router.GET("/webhooks", h.List)
		router.POST("/webhooks", h.Create)
		router.GET("/webhooks/:id", h.Get)
		router.PUT("/webhooks/:id", h.Update)
		router.DELETE("/webhooks/:id", h.Delete)
		router.POST("/webhooks/:id/test", h.Test)
	})

	validBody := func() map[string]any {
		return map[string]any{
			"format":          "weitersager",
			"url":             "https://irc.example.com/",
			"event_selectors": map[string]any{"shop-order-paid": nil},
			"extra_fields":    map[string]any{"channel": "#orga"},
		}
	}

	It("creates enabled webhooks by default", func() {
		var got model.OutgoingWebhook
		svc.createFn = func(_ context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
			got = webhook
			webhook.ID = 5
			return &webhook, nil
		}

		w := doJSON(router, http.MethodPost, "/webhooks", validBody())

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(got.Enabled).To(BeTrue())
		Expect(got.Format).To(Equal(model.WebhookFormatWeitersager))
		Expect(got.SelectsEvent("shop-order-paid")).To(BeTrue())
		Expect(got.Channel()).To(Equal("#orga"))
		Expect(decodeBody(w)["id"]).To(Equal("5"))
	})

	It("honors an explicit enabled=false", func() {
		var got model.OutgoingWebhook
		svc.createFn = func(_ context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
			got = webhook
			return &webhook, nil
		}

		body := validBody()
		body["enabled"] = false
		Expect(doJSON(router, http.MethodPost, "/webhooks", body).Code).To(Equal(http.StatusCreated))
		Expect(got.Enabled).To(BeFalse())
	})

	It("returns 400 when validation fails", func() {
		svc.createFn = func(context.Context, model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
			return nil, fmt.Errorf("%w: unknown format %q", service.ErrInvalidWebhook, "irc")
		}

		w := doJSON(router, http.MethodPost, "/webhooks", validBody())

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(decodeBody(w)["error"]).To(ContainSubstring("unknown format"))
	})

	It("returns 400 when required fields are missing", func() {
		w := doJSON(router, http.MethodPost, "/webhooks", map[string]any{"format": "discord"})
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("updates the webhook named in the path", func() {
		svc.updateFn = func(_ context.Context, webhook model.OutgoingWebhook) (*model.OutgoingWebhook, error) {
			Expect(webhook.ID).To(Equal(int64(9)))
			return &webhook, nil
		}

		w := doJSON(router, http.MethodPut, "/webhooks/9", validBody())
		Expect(w.Code).To(Equal(http.StatusOK))
	})

	It("returns 404 for unknown webhooks", func() {
		svc.getFn = func(context.Context, int64) (*model.OutgoingWebhook, error) {
			return nil, store.ErrNotFound
		}

		w := doJSON(router, http.MethodGet, "/webhooks/9", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("deletes with 204", func() {
		var deleted int64
		svc.deleteFn = func(_ context.Context, id int64) error {
			deleted = id
			return nil
		}

		w := doJSON(router, http.MethodDelete, "/webhooks/9", nil)
		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(deleted).To(Equal(int64(9)))
	})

	It("lists webhooks", func() {
		svc.listFn = func(context.Context) ([]model.OutgoingWebhook, error) {
			return []model.OutgoingWebhook{{ID: 1, Format: model.WebhookFormatDiscord}, {ID: 2, Format: model.WebhookFormatMatrix}}, nil
		}

		w := doJSON(router, http.MethodGet, "/webhooks", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp []map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp).To(HaveLen(2))
		Expect(resp[1]["format"]).To(Equal("matrix"))
	})

	Describe("Test", func() {
		It("reports failed deliveries with 200", func() {
			svc.sendTestFn = func(_ context.Context, _ int64, text string) (*service.WebhookTestResult, error) {
				Expect(text).To(Equal("hello"))
				return &service.WebhookTestResult{Error: "unexpected status", StatusCode: 500}, nil
			}

			w := doJSON(router, http.MethodPost, "/webhooks/9/test", map[string]any{"text": "hello"})

			Expect(w.Code).To(Equal(http.StatusOK))
			resp := decodeBody(w)
			Expect(resp["delivered"]).To(BeFalse())
			Expect(resp["status_code"]).To(BeNumerically("==", 500))
		})

		It("accepts an empty body", func() {
			var gotText string
			svc.sendTestFn = func(_ context.Context, _ int64, text string) (*service.WebhookTestResult, error) {
				gotText = text
				return &service.WebhookTestResult{Delivered: true}, nil
			}

			w := doJSON(router, http.MethodPost, "/webhooks/9/test", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(gotText).To(BeEmpty())
		})
	})
})
