package ioc

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	// env
	"github.com/joho/godotenv"

	// mongodb
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	// container
	container "github.com/golobby/container/v3"

	// repositories/db
	db "github.com/sportlink/sportlink-api/pkg/infra/db/mongodb"
	kafka_infra "github.com/sportlink/sportlink-api/pkg/infra/kafka"

	// ports
	common "github.com/sportlink/sportlink-api/pkg/domain"
	activity_entities "github.com/sportlink/sportlink-api/pkg/domain/activity/entities"
	activity_in "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/in"
	activity_out "github.com/sportlink/sportlink-api/pkg/domain/activity/ports/out"
	delta_in "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/in"
	delta_out "github.com/sportlink/sportlink-api/pkg/domain/delta/ports/out"
	rating_out "github.com/sportlink/sportlink-api/pkg/domain/rating/ports/out"
	skill_in "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/in"
	skill_out "github.com/sportlink/sportlink-api/pkg/domain/skill/ports/out"

	// services & usecases
	activity_services "github.com/sportlink/sportlink-api/pkg/domain/activity/services"
	activity_usecases "github.com/sportlink/sportlink-api/pkg/domain/activity/usecases"
	delta_services "github.com/sportlink/sportlink-api/pkg/domain/delta/services"
	rating_services "github.com/sportlink/sportlink-api/pkg/domain/rating/services"
	skill_services "github.com/sportlink/sportlink-api/pkg/domain/skill/services"
	skill_usecases "github.com/sportlink/sportlink-api/pkg/domain/skill/usecases"
)

type ContainerBuilder struct {
	Container container.Container
}

func NewContainerBuilder() *ContainerBuilder {
	c := container.New()

	b := &ContainerBuilder{
		c,
	}

	err := c.Singleton(func() container.Container {
		return b.Container
	})

	if err != nil {
		slog.Error("Failed to register container.Container in NewContainerBuilder.")
		panic(err)
	}

	return b
}

func (b *ContainerBuilder) Build() container.Container {
	return b.Container
}

func (b *ContainerBuilder) WithEnvFile() *ContainerBuilder {
	if os.Getenv("DEV_ENV") == "true" {
		err := godotenv.Load()
		if err != nil {
			slog.Error("Failed to load .env file")
			panic(err)
		}
	}

	err := b.Container.Singleton(func() (common.Config, error) {
		return EnvironmentConfig()
	})

	if err != nil {
		slog.Error("Failed to load EnvironmentConfig.")
		panic(err)
	}

	return b
}

// InjectMongoDB registers the client and database handles.
func InjectMongoDB(b *ContainerBuilder) {
	c := b.Container

	err := c.Singleton(func(config common.Config) (*mongo.Client, error) {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(config.MongoDB.URI))
		if err != nil {
			slog.Error("Failed to connect to MongoDB", "err", err)
			return nil, err
		}
		return client, nil
	})
	if err != nil {
		slog.Error("Failed to register *mongo.Client.")
		panic(err)
	}

	err = c.Singleton(func(client *mongo.Client, config common.Config) (*mongo.Database, error) {
		name := config.MongoDB.DBName
		if name == "" {
			name = "sportlink"
		}
		return client.Database(name), nil
	})
	if err != nil {
		slog.Error("Failed to register *mongo.Database.")
		panic(err)
	}
}

func (b *ContainerBuilder) With(injectors ...func(*ContainerBuilder)) *ContainerBuilder {
	for _, inject := range injectors {
		inject(b)
	}
	return b
}

// WithKafka registers the broker client and event publisher. Without
// configured brokers the publisher runs with a nil client and every publish
// becomes a no-op.
func (b *ContainerBuilder) WithKafka() *ContainerBuilder {
	c := b.Container

	err := c.Singleton(func(config common.Config) (*kafka_infra.Client, error) {
		if len(config.Kafka.Brokers) == 0 {
			slog.Info("Kafka brokers not configured, events disabled")
			return nil, nil
		}

		kafkaConfig := kafka_infra.NewConfigFromEnv()
		kafkaConfig.BootstrapServers = strings.Join(config.Kafka.Brokers, ",")

		return kafka_infra.NewClient(kafkaConfig)
	})
	if err != nil {
		slog.Error("Failed to register kafka Client.")
		panic(err)
	}

	err = c.Singleton(func(client *kafka_infra.Client) (*kafka_infra.EventPublisher, error) {
		return kafka_infra.NewEventPublisher(client), nil
	})
	if err != nil {
		slog.Error("Failed to register kafka EventPublisher.")
		panic(err)
	}

	err = c.Singleton(func(publisher *kafka_infra.EventPublisher) (activity_out.ProcessingQueue, error) {
		return publisher, nil
	})
	if err != nil {
		slog.Error("Failed to register ProcessingQueue.")
		panic(err)
	}

	return b
}

// WithRepositories registers every persistence adapter.
func (b *ContainerBuilder) WithRepositories() *ContainerBuilder {
	c := b.Container

	register := func(name string, resolver interface{}) {
		if err := c.Singleton(resolver); err != nil {
			slog.Error("Failed to register repository.", "name", name, "err", err)
			panic(err)
		}
	}

	register("ActivityRepository", func(database *mongo.Database) (activity_out.ActivityRepository, error) {
		return db.NewActivityMongoDBRepository(database), nil
	})
	register("ActivityTypeRepository", func(database *mongo.Database) (activity_out.ActivityTypeRepository, error) {
		return db.NewActivityTypeMongoDBRepository(database), nil
	})
	register("ParticipantRepository", func(database *mongo.Database) (activity_out.ParticipantRepository, error) {
		return db.NewParticipantMongoDBRepository(database), nil
	})
	register("UserELORepository", func(database *mongo.Database) (rating_out.UserELORepository, error) {
		return db.NewUserELOMongoDBRepository(database), nil
	})
	register("ELOStatusRepository", func(database *mongo.Database) (rating_out.ELOStatusRepository, error) {
		return db.NewELOStatusMongoDBRepository(database), nil
	})
	register("TransactionManager", func(client *mongo.Client) (rating_out.TransactionManager, error) {
		return db.NewMongoTransactionManager(client), nil
	})
	register("SkillDefinitionRepository", func(database *mongo.Database) (skill_out.SkillDefinitionRepository, error) {
		return db.NewSkillDefinitionMongoDBRepository(database), nil
	})
	register("ActivityTypeSkillRepository", func(database *mongo.Database) (skill_out.ActivityTypeSkillRepository, error) {
		return db.NewActivityTypeSkillMongoDBRepository(database), nil
	})
	register("SkillRatingRepository", func(database *mongo.Database) (skill_out.SkillRatingRepository, error) {
		return db.NewSkillRatingMongoDBRepository(database), nil
	})
	register("SkillSummaryRepository", func(database *mongo.Database) (skill_out.SkillSummaryRepository, error) {
		return db.NewSkillSummaryMongoDBRepository(database), nil
	})
	register("ChangeLogRepository", func(database *mongo.Database) (delta_out.ChangeLogRepository, error) {
		return db.NewChangeLogMongoDBRepository(database), nil
	})
	register("CursorRepository", func(database *mongo.Database) (delta_out.CursorRepository, error) {
		return db.NewCursorMongoDBRepository(database), nil
	})

	return b
}

// WithInboundPorts registers domain services and usecases behind their ports.
func (b *ContainerBuilder) WithInboundPorts() *ContainerBuilder {
	c := b.Container

	err := c.Singleton(func(changeLogRepository delta_out.ChangeLogRepository) (delta_in.ChangeRecorder, error) {
		return delta_services.NewChangeRecorderService(changeLogRepository), nil
	})
	if err != nil {
		slog.Error("Failed to register ChangeRecorder.")
		panic(err)
	}

	err = c.Singleton(func(
		changeLogRepository delta_out.ChangeLogRepository,
		cursorRepository delta_out.CursorRepository,
	) (*delta_services.DeltaQueryService, error) {
		return delta_services.NewDeltaQueryService(changeLogRepository, cursorRepository), nil
	})
	if err != nil {
		slog.Error("Failed to register DeltaQueryService.")
		panic(err)
	}

	err = c.Singleton(func(svc *delta_services.DeltaQueryService) (delta_in.DeltaQuery, error) {
		return svc, nil
	})
	if err != nil {
		slog.Error("Failed to register DeltaQuery port.")
		panic(err)
	}

	err = c.Singleton(func(svc *delta_services.DeltaQueryService) (delta_in.DeltaCommand, error) {
		return svc, nil
	})
	if err != nil {
		slog.Error("Failed to register DeltaCommand port.")
		panic(err)
	}

	err = c.Singleton(func(statusRepository rating_out.ELOStatusRepository, config common.Config) (*rating_services.LockManager, error) {
		return rating_services.NewLockManager(statusRepository, config.ServerID), nil
	})
	if err != nil {
		slog.Error("Failed to register LockManager.")
		panic(err)
	}

	err = c.Singleton(func() (*rating_services.ELOEngine, error) {
		return rating_services.NewELOEngine(), nil
	})
	if err != nil {
		slog.Error("Failed to register ELOEngine.")
		panic(err)
	}

	err = c.Singleton(func(
		eloRepository rating_out.UserELORepository,
		txManager rating_out.TransactionManager,
		recorder delta_in.ChangeRecorder,
	) (*rating_services.ELOPersister, error) {
		return rating_services.NewELOPersister(eloRepository, txManager, recorder), nil
	})
	if err != nil {
		slog.Error("Failed to register ELOPersister.")
		panic(err)
	}

	err = c.Singleton(func(
		typeSkillRepository skill_out.ActivityTypeSkillRepository,
		ratingRepository skill_out.SkillRatingRepository,
		summaryRepository skill_out.SkillSummaryRepository,
		definitionRepository skill_out.SkillDefinitionRepository,
	) (skill_in.SummaryRecalculator, error) {
		return skill_services.NewSummaryService(typeSkillRepository, ratingRepository, summaryRepository, definitionRepository), nil
	})
	if err != nil {
		slog.Error("Failed to register SummaryRecalculator.")
		panic(err)
	}

	err = c.Singleton(func(
		activityRepository activity_out.ActivityRepository,
		participantRepository activity_out.ParticipantRepository,
		typeSkillRepository skill_out.ActivityTypeSkillRepository,
		ratingRepository skill_out.SkillRatingRepository,
		recalculator skill_in.SummaryRecalculator,
		recorder delta_in.ChangeRecorder,
	) (skill_in.SkillRatingCommand, error) {
		return skill_usecases.NewSkillRatingCommandUseCase(
			activityRepository,
			participantRepository,
			typeSkillRepository,
			ratingRepository,
			recalculator,
			recorder,
		), nil
	})
	if err != nil {
		slog.Error("Failed to register SkillRatingCommand.")
		panic(err)
	}

	err = c.Singleton(func(
		ratingRepository skill_out.SkillRatingRepository,
		summaryRepository skill_out.SkillSummaryRepository,
		activityRepository activity_out.ActivityRepository,
		participantRepository activity_out.ParticipantRepository,
	) (skill_in.SkillRatingQuery, error) {
		return skill_services.NewSkillRatingQueryService(
			ratingRepository,
			summaryRepository,
			activityRepository,
			participantRepository,
		), nil
	})
	if err != nil {
		slog.Error("Failed to register SkillRatingQuery.")
		panic(err)
	}

	err = c.Singleton(func(config common.Config) (activity_entities.ELOSettings, error) {
		return LoadDefaultELOSettings(config.ELODefaultsFile)
	})
	if err != nil {
		slog.Error("Failed to register default ELOSettings.")
		panic(err)
	}

	err = c.Singleton(func(
		activityRepository activity_out.ActivityRepository,
		typeRepository activity_out.ActivityTypeRepository,
		participantRepository activity_out.ParticipantRepository,
		eloRepository rating_out.UserELORepository,
		statusRepository rating_out.ELOStatusRepository,
		lockManager *rating_services.LockManager,
		engine *rating_services.ELOEngine,
		persister *rating_services.ELOPersister,
		skillRatingRepository skill_out.SkillRatingRepository,
		summaryRepository skill_out.SkillSummaryRepository,
		recorder delta_in.ChangeRecorder,
		queue activity_out.ProcessingQueue,
		defaults activity_entities.ELOSettings,
	) (*activity_usecases.ActivityCommandUseCase, error) {
		return activity_usecases.NewActivityCommandUseCase(
			activityRepository,
			typeRepository,
			participantRepository,
			eloRepository,
			statusRepository,
			lockManager,
			engine,
			persister,
			skillRatingRepository,
			summaryRepository,
			recorder,
			queue,
			defaults,
		), nil
	})
	if err != nil {
		slog.Error("Failed to register ActivityCommandUseCase.")
		panic(err)
	}

	err = c.Singleton(func(uc *activity_usecases.ActivityCommandUseCase) (activity_in.ActivityCommand, error) {
		return uc, nil
	})
	if err != nil {
		slog.Error("Failed to register ActivityCommand port.")
		panic(err)
	}

	err = c.Singleton(func(uc *activity_usecases.ActivityCommandUseCase) (activity_in.PendingProcessor, error) {
		return uc, nil
	})
	if err != nil {
		slog.Error("Failed to register PendingProcessor port.")
		panic(err)
	}

	err = c.Singleton(func(
		activityRepository activity_out.ActivityRepository,
		statusRepository rating_out.ELOStatusRepository,
		eloRepository rating_out.UserELORepository,
	) (activity_in.ActivityQuery, error) {
		return activity_services.NewActivityQueryService(activityRepository, statusRepository, eloRepository), nil
	})
	if err != nil {
		slog.Error("Failed to register ActivityQuery port.")
		panic(err)
	}

	return b
}

// Close tears down long-lived connections.
func (b *ContainerBuilder) Close(c container.Container) {
	var client *mongo.Client
	if err := c.Resolve(&client); err == nil && client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			slog.Error("Failed to disconnect MongoDB client", "err", err)
		}
	}
}
