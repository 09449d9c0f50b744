package cache

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xavierca1/ligue-crm-mailer/internal/entity"
)

const (
	jobKeyPrefix = "bulk-email-job:"
	jobTTL       = 24 * time.Hour
)

// Prefixos históricos de versões anteriores do esquema de chaves. Só existem
// para a migração única no startup; nenhum leitor consulta esses prefixos.
var legacyJobKeyPrefixes = []string{"crm:bulk_email:job:", "bulk_email_job_"}

// JobStore persiste snapshots de BulkJob no Redis com TTL de 24h. Um writer
// por job (o worker daquele job), N leitores concorrentes fazendo polling.
type JobStore struct {
	rc *redis.Client
}

func NewJobStore(addr string, db int) *JobStore {
	rc := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	return &JobStore{rc: rc}
}

func NewJobStoreWithClient(rc *redis.Client) *JobStore {
	return &JobStore{rc: rc}
}

func (s *JobStore) Ping(ctx context.Context) error {
	return s.rc.Ping(ctx).Err()
}

// NormalizeJobID aceita tanto o id puro quanto o formato composto com escopo
// de site ("site||id") e devolve sempre o id puro.
func NormalizeJobID(jobID string) string {
	if idx := strings.LastIndex(jobID, "||"); idx >= 0 {
		return jobID[idx+2:]
	}
	return jobID
}

func (s *JobStore) Save(ctx context.Context, job *entity.BulkJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.rc.Set(ctx, jobKeyPrefix+NormalizeJobID(job.JobID), data, jobTTL).Err()
}

// Get retorna nil sem erro quando o job não existe (expirou ou nunca houve).
func (s *JobStore) Get(ctx context.Context, jobID string) (*entity.BulkJob, error) {
	data, err := s.rc.Get(ctx, jobKeyPrefix+NormalizeJobID(jobID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var job entity.BulkJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *JobStore) List(ctx context.Context) ([]entity.BulkJob, error) {
	var jobs []entity.BulkJob

	iter := s.rc.Scan(ctx, 0, jobKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := s.rc.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue // chave pode ter expirado entre o SCAN e o GET
		}
		var job entity.BulkJob
		if err := json.Unmarshal(data, &job); err != nil {
			continue
		}
		jobs = append(jobs, job)
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return jobs, nil
}

// MigrateLegacyKeys copia uma única vez as entradas dos esquemas antigos de
// chave para o esquema atual, preservando o TTL restante. Roda no startup.
func (s *JobStore) MigrateLegacyKeys(ctx context.Context) error {
	migrated := 0

	for _, prefix := range legacyJobKeyPrefixes {
		iter := s.rc.Scan(ctx, 0, prefix+"*", 100).Iterator()
		for iter.Next(ctx) {
			oldKey := iter.Val()
			jobID := NormalizeJobID(strings.TrimPrefix(oldKey, prefix))
			newKey := jobKeyPrefix + jobID

			exists, err := s.rc.Exists(ctx, newKey).Result()
			if err != nil || exists > 0 {
				continue
			}

			data, err := s.rc.Get(ctx, oldKey).Bytes()
			if err != nil {
				continue
			}

			ttl, err := s.rc.TTL(ctx, oldKey).Result()
			if err != nil || ttl <= 0 {
				ttl = jobTTL
			}

			if err := s.rc.Set(ctx, newKey, data, ttl).Err(); err != nil {
				continue
			}
			s.rc.Del(ctx, oldKey)
			migrated++
		}
		if err := iter.Err(); err != nil {
			return err
		}
	}

	if migrated > 0 {
		log.Printf("🔑 Migradas %d chaves legadas de bulk job para o esquema atual", migrated)
	}
	return nil
}
