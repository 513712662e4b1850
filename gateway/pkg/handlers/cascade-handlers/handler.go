/*
 * Copyright (C) 2025-2026, YourCFP. All rights reserved.
 * See LICENSE for license information.
 */

package cascade_handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	dbclient "github.com/YourCFP/we-mp-rss/common/pkg/database/client"
	commonerrors "github.com/YourCFP/we-mp-rss/common/pkg/errors"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/credential"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/dispatcher"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/registry"
	"github.com/YourCFP/we-mp-rss/gateway/pkg/scheduler"
	apiutils "github.com/YourCFP/we-mp-rss/gateway/pkg/utils"
	"github.com/YourCFP/we-mp-rss/utils/pkg/httpclient"
	jsonutils "github.com/YourCFP/we-mp-rss/utils/pkg/json"
)

type Handler struct {
	dbClient   dbclient.Interface
	httpClient httpclient.Interface
	verifier   *credential.Verifier
	registry   *registry.Registry
	dispatcher *dispatcher.Dispatcher
	scheduler  *scheduler.Manager
}

func NewHandler(dbClient dbclient.Interface, d *dispatcher.Dispatcher,
	s *scheduler.Manager, r *registry.Registry, v *credential.Verifier) (*Handler, error) {
	if dbClient == nil {
		return nil, fmt.Errorf("failed to new cascade handler: no db client")
	}
	h := &Handler{
		dbClient:   dbClient,
		httpClient: httpclient.NewHttpClient(),
		verifier:   v,
		registry:   r,
		dispatcher: d,
		scheduler:  s,
	}
	return h, nil
}

type handleFunc func(*gin.Context) (interface{}, error)

// handle runs one endpoint and wraps the result into the response envelope.
func handle(c *gin.Context, fn handleFunc) {
	rsp, err := fn(c)
	if err != nil {
		apiutils.AbortWithApiError(c, err)
		return
	}
	c.JSON(http.StatusOK, apiutils.Success(rsp))
}

func getBodyFromRequest(req *http.Request, bodyStruct interface{}) ([]byte, error) {
	body, err := apiutils.ReadBody(req)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, nil
	}
	if err = jsonutils.UnmarshalWithCheck(body, bodyStruct); err != nil {
		return body, commonerrors.NewBadRequest(err.Error())
	}
	return body, nil
}
