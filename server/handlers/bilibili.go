package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lightningstudio/watchbili/server/model"
	"github.com/lightningstudio/watchbili/utils"
	"github.com/lightningstudio/watchbili/vendors/bilibili"
	log "github.com/sirupsen/logrus"
	"github.com/zijiren233/gencontainer/rwmap"
)

var ErrQRCodeSuperseded = errors.New("qrcode superseded by a newer one")

// Bilibili serves the account of one client. It keeps one live QR session
// per login flavor.
type Bilibili struct {
	client   *bilibili.Client
	sessions rwmap.RWMap[string, *bilibili.QRSession]
}

func NewBilibili(cli *bilibili.Client) *Bilibili {
	return &Bilibili{client: cli}
}

func entry(ctx *gin.Context) *log.Entry {
	if v, ok := ctx.Get("log"); ok {
		if l, ok := v.(*log.Entry); ok {
			return l
		}
	}
	return log.NewEntry(log.StandardLogger())
}

func errStatus(err error) int {
	var (
		te *bilibili.TransportError
		ae *bilibili.APIError
	)
	switch {
	case errors.Is(err, bilibili.ErrMissingCSRF),
		errors.Is(err, bilibili.ErrMissingAccessKey),
		errors.Is(err, bilibili.ErrMissingVideoID),
		errors.Is(err, bilibili.ErrInvalidMultiply):
		return http.StatusBadRequest
	case errors.As(err, &te), errors.As(err, &ae),
		errors.Is(err, bilibili.ErrMissingWbiKeys),
		errors.Is(err, bilibili.ErrEmptyBuvid),
		errors.Is(err, bilibili.ErrEmptyTicket):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func flavor(ctx *gin.Context) (*bilibili.Flavor, bool) {
	f, ok := bilibili.FlavorByName(ctx.Param("flavor"))
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusNotFound, model.NewApiErrorStringResp("unknown login flavor: "+ctx.Param("flavor")))
	}
	return f, ok
}

// NewQRCode starts a login and supersedes any earlier code of the flavor.
func (h *Bilibili) NewQRCode(ctx *gin.Context) {
	f, ok := flavor(ctx)
	if !ok {
		return
	}
	s := h.client.Login.NewSession(f)
	qr, err := s.Request(ctx)
	if err != nil {
		entry(ctx).Errorf("request %s qrcode: %v", f.Name, err)
		ctx.AbortWithStatusJSON(errStatus(err), model.NewApiErrorResp(err))
		return
	}
	h.sessions.Store(f.Name, s)
	ctx.JSON(http.StatusOK, model.NewApiDataResp(qr))
}

// PollQRCode polls once. A key issued before the live one of its flavor is
// rejected; a key this server never issued is polled directly.
func (h *Bilibili) PollQRCode(ctx *gin.Context) {
	f, ok := flavor(ctx)
	if !ok {
		return
	}
	var req model.QRCodePollReq
	if err := model.Decode(ctx, &req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewApiErrorResp(err))
		return
	}

	var res *bilibili.PollResult
	if s, ok := h.sessions.Load(f.Name); ok {
		qr := s.QRCode()
		if qr.Key != req.Key {
			ctx.AbortWithStatusJSON(http.StatusConflict, model.NewApiErrorResp(ErrQRCodeSuperseded))
			return
		}
		var err error
		res, err = s.Poll(ctx)
		if err != nil {
			ctx.AbortWithStatusJSON(errStatus(err), model.NewApiErrorResp(err))
			return
		}
	} else {
		res = h.client.Login.Poll(ctx, f, req.Key)
	}

	if res.State == bilibili.QRStateSuccess {
		entry(ctx).Infof("%s qrcode login success", f.Name)
	}
	ctx.JSON(http.StatusOK, model.NewApiDataResp(model.NewQRCodePollResp(res)))
}

// Account reports the stored account. With ?info=true the remote nav
// endpoint is asked for the user name as well.
func (h *Bilibili) Account(ctx *gin.Context) {
	a, err := h.client.Store().Read(ctx)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, model.NewApiErrorResp(err))
		return
	}
	resp := model.NewAccountResp(a)
	if ctx.Query("info") == "true" && resp.IsLogin {
		info, err := h.client.UserInfo(ctx)
		if err != nil {
			entry(ctx).Warnf("user info: %v", err)
		} else {
			resp.IsLogin = info.IsLogin
			resp.Mid = info.Mid
			resp.Uname = info.Uname
		}
	}
	ctx.JSON(http.StatusOK, model.NewApiDataResp(resp))
}

func (h *Bilibili) RefreshIdentity(ctx *gin.Context) {
	var (
		data any
		err  error
	)
	switch kind := ctx.Param("kind"); kind {
	case "buvid":
		var b *bilibili.Buvid
		if b, err = h.client.Identity.RefreshBuvid(ctx); err == nil {
			data = gin.H{"buvid3": b.Buvid3, "buvid4": b.Buvid4}
		}
	case "wbi":
		var k *bilibili.WbiKeys
		if k, err = h.client.Identity.RefreshWbiKeys(ctx); err == nil {
			data = gin.H{"imgKey": k.ImgKey, "subKey": k.SubKey}
		}
	case "ticket":
		var a *bilibili.Account
		if a, err = h.client.Store().Read(ctx); err != nil {
			break
		}
		var t string
		if t, err = h.client.Identity.RefreshTicket(ctx, a.CSRFToken()); err == nil {
			data = gin.H{"ticket": utils.Mask(t)}
		}
	default:
		ctx.AbortWithStatusJSON(http.StatusNotFound, model.NewApiErrorStringResp("unknown identity kind: "+kind))
		return
	}
	if err != nil {
		entry(ctx).Warnf("refresh %s: %v", ctx.Param("kind"), err)
		ctx.AbortWithStatusJSON(errStatus(err), model.NewApiErrorResp(err))
		return
	}
	ctx.JSON(http.StatusOK, model.NewApiDataResp(data))
}

func (h *Bilibili) SignApp(ctx *gin.Context) {
	var req model.SignReq
	if err := model.Decode(ctx, &req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewApiErrorResp(err))
		return
	}
	params, err := h.client.SignedAppParams(ctx, req.Params)
	if err != nil {
		ctx.AbortWithStatusJSON(errStatus(err), model.NewApiErrorResp(err))
		return
	}
	ctx.JSON(http.StatusOK, model.NewApiDataResp(&model.SignResp{Params: params}))
}

// SignWbi answers 502 when no keys could be obtained; nothing unsigned is
// handed out.
func (h *Bilibili) SignWbi(ctx *gin.Context) {
	var req model.SignReq
	if err := model.Decode(ctx, &req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewApiErrorResp(err))
		return
	}
	params, err := h.client.SignedWbiParams(ctx, req.Params)
	if err != nil {
		ctx.AbortWithStatusJSON(errStatus(err), model.NewApiErrorResp(err))
		return
	}
	ctx.JSON(http.StatusOK, model.NewApiDataResp(&model.SignResp{Params: params}))
}

func (h *Bilibili) Action(ctx *gin.Context) {
	var req model.ActionReq
	if err := model.Decode(ctx, &req); err != nil {
		ctx.AbortWithStatusJSON(http.StatusBadRequest, model.NewApiErrorResp(err))
		return
	}
	var (
		res *bilibili.ActionResult
		err error
		id  = req.VideoID()
	)
	switch kind := ctx.Param("kind"); kind {
	case "like":
		like := req.Like == nil || *req.Like
		res, err = h.client.Action.Like(ctx, id, like, req.Options()...)
	case "coin":
		multiply := req.Multiply
		if multiply == 0 {
			multiply = 1
		}
		res, err = h.client.Action.Coin(ctx, id, multiply, req.SelectLike, req.Options()...)
	case "triple":
		res, err = h.client.Action.Triple(ctx, id, req.Options()...)
	case "favorite":
		res, err = h.client.Action.Favorite(ctx, id, req.Add, req.Del, req.Options()...)
	default:
		ctx.AbortWithStatusJSON(http.StatusNotFound, model.NewApiErrorStringResp("unknown action: "+kind))
		return
	}
	if err != nil {
		ctx.AbortWithStatusJSON(errStatus(err), model.NewApiErrorResp(err))
		return
	}
	ctx.JSON(http.StatusOK, model.NewApiDataResp(res))
}
