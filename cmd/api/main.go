package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"vocal-emotion-go/internal/actionable"
	"vocal-emotion-go/internal/aggregator"
	"vocal-emotion-go/internal/config"
	"vocal-emotion-go/internal/dataset"
	"vocal-emotion-go/internal/logger"
	"vocal-emotion-go/internal/processor"
	"vocal-emotion-go/internal/report"
	"vocal-emotion-go/internal/types"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()
	log.WithField("service", "vocal-emotion-go").Info("starting service")

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load config")
	}

	mux := http.NewServeMux()

	// health
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		logger.New().WithRequest(r).Info("health check")
		fmt.Fprint(w, "ok")
	})

	// analyze one recording: GET ?audio_url=... or POST multipart "audio"
	mux.HandleFunc("/analyze", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "analyze")
		reqLog.Info("analyze request received")

		start := time.Now()
		var res processor.Result
		var err error

		if r.Method == http.MethodPost {
			file, _, ferr := r.FormFile("audio")
			if ferr != nil {
				reqLog.WithError(ferr).Warn("missing audio upload")
				http.Error(w, "missing audio upload", http.StatusBadRequest)
				return
			}
			defer file.Close()
			raw, rerr := io.ReadAll(file)
			if rerr != nil {
				http.Error(w, "read upload failed", http.StatusBadRequest)
				return
			}
			res, err = processor.AnalyzeBytes(raw)
		} else {
			audioURL := r.URL.Query().Get("audio_url")
			if audioURL == "" {
				reqLog.Warn("missing audio_url")
				http.Error(w, "missing audio_url", http.StatusBadRequest)
				return
			}
			timeoutSec := cfg.Fetch.TimeoutSec
			if t := r.URL.Query().Get("timeout_sec"); t != "" {
				fmt.Sscanf(t, "%d", &timeoutSec)
			}
			timeoutSec = positiveOr(timeoutSec, cfg.Fetch.TimeoutSec)
			reqLog = reqLog.WithField("audio_url", audioURL).WithField("timeout_sec", timeoutSec)
			res, err = processor.AnalyzeURL(audioURL, time.Duration(timeoutSec)*time.Second)
		}

		reqLog.WithField("duration_ms", time.Since(start).Milliseconds()).Info("processor finished")
		w.Header().Set("Content-Type", "application/json")
		if err != nil {
			reqLog.WithError(err).Warn("processor returned error")
			w.WriteHeader(http.StatusInternalServerError)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			reqLog.WithError(err).Error("failed to write response")
		}
	})

	// batch: run the recordings workbook, aggregate, persist a session report
	mux.HandleFunc("/batch", func(w http.ResponseWriter, r *http.Request) {
		reqLog := logger.New().WithRequest(r).WithField("handler", "batch")
		reqLog.Info("batch invoked")

		records, err := dataset.Load(cfg.Paths.Dataset)
		if err != nil {
			reqLog.WithError(err).Error("dataset load error")
			http.Error(w, "dataset load error", http.StatusInternalServerError)
			return
		}
		limit := 25
		if l := r.URL.Query().Get("limit"); l != "" {
			fmt.Sscanf(l, "%d", &limit)
		}
		limit = clampLimit(limit, len(records))

		results := make([]processor.Result, 0, limit)
		profiles := make([]types.EmotionResult, 0, limit)
		for _, rec := range records[:limit] {
			reqLog := reqLog.WithField("call_id", rec.CallID).WithField("audio_url", rec.AudioURL)
			reqLog.Info("processing recording")
			res, err := processor.AnalyzeURL(rec.AudioURL, time.Duration(cfg.Fetch.TimeoutSec)*time.Second)
			res.CallID = rec.CallID
			if err == nil && res.Profile != nil {
				profiles = append(profiles, *res.Profile)
			}
			results = append(results, res)
		}

		ins := aggregator.Aggregate(profiles)
		card := actionable.Generate(ins)
		sid, jsonPath, xlsxPath, err := report.Persist(cfg.Paths.Outputs, results, ins, card)
		if err != nil {
			reqLog.WithError(err).Error("failed to persist session report")
		} else {
			reqLog.WithField("session_id", sid).WithField("json", jsonPath).WithField("xlsx", xlsxPath).Info("session report written")
		}

		w.Header().Set("Content-Type", "application/json")
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{
			"session_id":  sid,
			"results":     results,
			"insight":     ins,
			"action_card": card,
		}); err != nil {
			reqLog.WithError(err).Error("failed to write response")
		}
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.WithField("addr", addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// clampLimit bounds a caller-supplied row limit to [0, n] so a hostile
// query value can never slice out of range.
func clampLimit(limit, n int) int {
	if limit < 0 {
		return 0
	}
	if limit > n {
		return n
	}
	return limit
}

// positiveOr falls back when a caller-supplied timeout is zero or negative,
// which would otherwise hand fetch an already-expired context.
func positiveOr(sec, fallback int) int {
	if sec <= 0 {
		return fallback
	}
	return sec
}
