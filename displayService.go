package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
)

// how long a handler waits for runContent to take a message
const dContentWait = 2 * time.Second

type digitStatus struct {
	Pin  int    `json:"pin"`
	Char string `json:"char"`
	Dot  bool   `json:"dot"`
}

type apiResponse struct {
	Response string        `json:"response"`
	Error    string        `json:"error,omitempty"`
	Display  string        `json:"display"`
	Digits   []digitStatus `json:"digits,omitempty"`
}

// apiHandler - handles the HTTP content API
type apiHandler struct {
	rt runtimeConfig
}

func newAPIHandler(rt runtimeConfig) *apiHandler {
	return &apiHandler{rt: rt}
}

func newRouter(h *apiHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/status", h.apiStatus).Methods("GET")
	r.HandleFunc("/api/dec/{value:-?[0-9]+}", h.apiDec).Methods("POST")
	r.HandleFunc("/api/hex/{value:[0-9a-fA-F]+}", h.apiHex).Methods("POST")
	r.HandleFunc("/api/text/{value}", h.apiText).Methods("POST")
	r.HandleFunc("/api/clear", h.apiClear).Methods("POST")
	r.NotFoundHandler = http.HandlerFunc(h.apiError)
	return r
}

func (h *apiHandler) status() apiResponse {
	digits := h.rt.display.Snapshot()
	ret := apiResponse{Response: "OK", Display: displayText(digits)}
	for _, d := range digits {
		ret.Digits = append(ret.Digits, digitStatus{Pin: d.Pin, Char: string(d.Content), Dot: d.Dot})
	}
	return ret
}

func writeAnswer(w http.ResponseWriter, code int, ar apiResponse) {
	output, _ := json.Marshal(ar)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(output)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeAnswer(w, code, apiResponse{Response: "BAD", Error: err.Error()})
}

// send hands msg to runContent and waits for the result
func (h *apiHandler) send(w http.ResponseWriter, msg contentMsg) {
	errQuit := errors.New("shutting down")

	// content is buffered, don't queue behind a loop that is gone
	select {
	case <-h.rt.comms.quit:
		writeError(w, http.StatusServiceUnavailable, errQuit)
		return
	default:
	}

	select {
	case h.rt.comms.content <- msg:
	case <-h.rt.comms.quit:
		writeError(w, http.StatusServiceUnavailable, errQuit)
		return
	case <-time.After(dContentWait):
		writeError(w, http.StatusServiceUnavailable, errors.New("display busy"))
		return
	}

	var err error
	select {
	case err = <-msg.reply:
	case <-h.rt.comms.quit:
		writeError(w, http.StatusServiceUnavailable, errQuit)
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeAnswer(w, http.StatusOK, h.status())
}

func (h *apiHandler) apiStatus(w http.ResponseWriter, r *http.Request) {
	writeAnswer(w, http.StatusOK, h.status())
}

func (h *apiHandler) apiDec(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.ParseInt(mux.Vars(r)["value"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.send(w, decContent(n))
}

func (h *apiHandler) apiHex(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.ParseUint(mux.Vars(r)["value"], 16, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	h.send(w, hexContent(n))
}

func (h *apiHandler) apiText(w http.ResponseWriter, r *http.Request) {
	h.send(w, textContent(mux.Vars(r)["value"]))
}

func (h *apiHandler) apiClear(w http.ResponseWriter, r *http.Request) {
	h.send(w, clearContent())
}

func (h *apiHandler) apiError(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, errors.Errorf("no such endpoint: %s %s", r.Method, r.URL.Path))
}

func startDisplayService(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "DisplayService"}
	wg.Add(1)
	go runDisplayService(rt)
}

// runDisplayService serves the content API until quit
func runDisplayService(rt runtimeConfig) {
	defer wg.Done()
	defer func() {
		rt.logger.Println("exiting runDisplayService")
	}()

	addr := rt.settings.GetString(sListen)
	if addr == "" {
		rt.logger.Println("no listen address, display service disabled")
		return
	}

	srv := &http.Server{Addr: addr, Handler: newRouter(newAPIHandler(rt))}

	done := make(chan struct{})
	go func() {
		defer close(done)
		rt.logger.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			rt.logger.Printf("display service: %s", err.Error())
		}
	}()

	select {
	case <-rt.comms.quit:
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		<-done
	case <-done:
	}
}
