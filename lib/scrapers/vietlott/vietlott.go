// Package vietlott scrapes draw results off the vietlott.vn ajaxpro
// endpoints by walking the "previous draw" navigation links backward
// through history.
package vietlott

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"vietlott-backend/lib/products"
	"vietlott-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/vietlott")

// shared across every game endpoint
const requestKey = "23bbd667"

type orenderInfo struct {
	SiteId        string  `json:"SiteId"`
	SiteAlias     string  `json:"SiteAlias"`
	UserSessionId string  `json:"UserSessionId"`
	SiteLang      string  `json:"SiteLang"`
	IsPageDesign  bool    `json:"IsPageDesign"`
	ExtraParam1   string  `json:"ExtraParam1"`
	ExtraParam2   string  `json:"ExtraParam2"`
	ExtraParam3   string  `json:"ExtraParam3"`
	SiteURL       string  `json:"SiteURL"`
	WebPage       *string `json:"WebPage"`
	SiteName      string  `json:"SiteName"`
	OrgPageAlias  *string `json:"OrgPageAlias"`
	PageAlias     *string `json:"PageAlias"`
	RefKey        *string `json:"RefKey"`
	FullPageAlias *string `json:"FullPageAlias"`
}

type drawRequest struct {
	ORenderInfo orenderInfo `json:"ORenderInfo"`
	Key         string      `json:"Key"`
	DrawId      string      `json:"DrawId"`
}

// builds the envelope for one fetch, an empty cursor requests the
// latest draw
func newDrawRequest(cursor string) drawRequest {
	return drawRequest{
		ORenderInfo: orenderInfo{
			SiteId:    "main.frontend.vi",
			SiteAlias: "main.vi",
			SiteLang:  "vi",
			SiteName:  "Vietlott",
		},
		Key:    requestKey,
		DrawId: cursor,
	}
}

type drawResponse struct {
	Value struct {
		RetExtraParam1 string `json:"RetExtraParam1"`
	} `json:"value"`
}

type Client struct {
	config products.Config
	http   *resty.Client
}

func NewClient(cfg products.Config) *Client {
	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeaders(map[string]string{
		"User-Agent":   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
		"Content-Type": "text/plain; charset=utf-8",
		"Accept":       "*/*",
		"Origin":       "https://vietlott.vn",
		"Referer":      "https://vietlott.vn/",
	})
	client.SetTimeout(time.Second * 60)

	telemetry.InstrumentResty(client, "scrapers/vietlott/http")

	return &Client{
		config: cfg,
		http:   client,
	}
}

// Close releases the session's pooled connections.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}

// FetchDraw retrieves and parses a single draw. An empty cursor
// fetches the latest draw.
func (c *Client) FetchDraw(ctx context.Context, cursor string) (*DrawRecord, error) {
	ctx, span := tracer.Start(ctx, "client:FetchDraw")
	defer span.End()

	// the endpoint speaks JSON but expects a text/plain content type,
	// so the body is marshalled by hand
	body, err := json.Marshal(newDrawRequest(cursor))
	if err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-AjaxPro-Method", "ServerSideDrawResult").
		SetBody(body).
		Post(c.config.URL)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch draw")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch draw %q: unexpected status %s", cursor, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "non-success status")
		return nil, err
	}

	var envelope drawResponse
	err = json.Unmarshal(res.Body(), &envelope)
	if err != nil {
		span.SetStatus(codes.Error, "failed to decode response envelope")
		return nil, fmt.Errorf("decode response envelope: %w", err)
	}
	if envelope.Value.RetExtraParam1 == "" {
		return nil, fmt.Errorf("no html payload for draw %q", cursor)
	}

	return parseDraw(c.config, envelope.Value.RetExtraParam1)
}
