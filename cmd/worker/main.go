package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carometro/internal/audit"
	"carometro/internal/config"
	"carometro/internal/queue"
	"carometro/internal/store"
)

// Worker drains the audit-log queue into Postgres and purges entries past
// the retention window. Log persistence is best-effort by design: a failed
// insert is logged and the message dropped, never retried.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr, cfg.RedisDialTimeout, cfg.RedisOpTimeout)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "carometro:audit")
	}

	logRepo := audit.NewRepo(db.Client)

	go retentionLoop(ctx, logRepo, cfg.LogRetentionDays)

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for audit entries...")
	for msg := range messages {
		if msg.Type != audit.MessageType {
			continue
		}

		entry, err := audit.DecodeEntry(msg.Body)
		if err != nil {
			log.Printf("malformed audit entry dropped: %v", err)
			continue
		}
		if err := logRepo.Insert(ctx, entry); err != nil {
			log.Printf("audit insert failed, entry dropped: %v", err)
		}
	}

	log.Println("worker stopped")
}

// retentionLoop purges old audit entries once at startup and then daily.
func retentionLoop(ctx context.Context, repo *audit.Repo, retentionDays int) {
	if retentionDays <= 0 {
		retentionDays = 90
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)
		if purged, err := repo.DeleteOlderThan(ctx, cutoff); err != nil {
			log.Printf("log retention sweep failed: %v", err)
		} else if purged > 0 {
			log.Printf("log retention sweep purged %d entries", purged)
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		}
	}
}
