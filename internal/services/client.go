package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/andrelobo/zoe-backend/internal/logger"
  "github.com/andrelobo/zoe-backend/internal/normalization"
  errs "github.com/andrelobo/zoe-backend/internal/pkg/errors"
  "github.com/andrelobo/zoe-backend/internal/repos"
  "github.com/andrelobo/zoe-backend/internal/types"
)

type ClientService interface {
  CreateClient(ctx context.Context, client *types.Client) (*types.Client, error)
  GetAllClients(ctx context.Context) ([]*types.Client, error)
  GetClientByID(ctx context.Context, clientID uuid.UUID) (*types.Client, error)
}

type clientService struct {
  db         *gorm.DB
  log        *logger.Logger
  clientRepo repos.ClientRepo
}

func NewClientService(db *gorm.DB, log *logger.Logger, clientRepo repos.ClientRepo) ClientService {
  serviceLog := log.With("service", "ClientService")
  return &clientService{db: db, log: serviceLog, clientRepo: clientRepo}
}

func (cs *clientService) CreateClient(ctx context.Context, client *types.Client) (*types.Client, error) {
  client.Name = normalization.TrimInputString(client.Name)
  client.Email = normalization.ParseInputString(client.Email)
  client.Phone = normalization.TrimInputString(client.Phone)
  client.Address = normalization.TrimInputString(client.Address)

  if client.Name == "" {
    return nil, fmt.Errorf("name: %w", errs.ErrMissingField)
  }
  if client.Email == "" {
    return nil, fmt.Errorf("email: %w", errs.ErrMissingField)
  }
  exists, eErr := cs.clientRepo.EmailExists(ctx, nil, client.Email)
  if eErr != nil {
    return nil, fmt.Errorf("Failed to check client email: %w", eErr)
  }
  if exists {
    return nil, fmt.Errorf("email is already in use: %w", errs.ErrInvalidArgument)
  }

  client.ID = uuid.New()
  // New clients always start with a zero counter; only the purchase
  // lifecycle moves it.
  client.PurchaseCount = 0

  created, cErr := cs.clientRepo.Create(ctx, nil, client)
  if cErr != nil {
    return nil, fmt.Errorf("Failed to create client: %w", cErr)
  }
  return created, nil
}

func (cs *clientService) GetAllClients(ctx context.Context) ([]*types.Client, error) {
  clients, err := cs.clientRepo.GetAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to list clients: %w", err)
  }
  return clients, nil
}

func (cs *clientService) GetClientByID(ctx context.Context, clientID uuid.UUID) (*types.Client, error) {
  client, err := cs.clientRepo.GetByID(ctx, nil, clientID)
  if err != nil {
    return nil, err
  }
  return client, nil
}
