package session

import "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/kv"

// Store хранилище, в которое сериализуется состояние сессии
type Store = kv.Store
