package discovery

import (
	"fmt"
	"slices"
	"strconv"

	"academy-service/internal/config"

	"github.com/hashicorp/consul/api"
	"go.uber.org/zap"
)

// Agent is the part of the Consul agent API the registry needs.
type Agent interface {
	ServiceRegister(service *api.AgentServiceRegistration) error
	ServiceDeregister(serviceID string) error
}

// Health is the part of the Consul health API used for lookups.
type Health interface {
	Service(service, tag string, passingOnly bool, q *api.QueryOptions) ([]*api.ServiceEntry, *api.QueryMeta, error)
}

type ServiceRegistry struct {
	agent  Agent
	health Health
	server config.ServerConfig
	logger *zap.Logger
}

func NewServiceRegistry(cfg *config.Config, logger *zap.Logger) (*ServiceRegistry, error) {
	consulConfig := api.DefaultConfig()
	consulConfig.Address = cfg.Consul.ConsulAddress

	client, err := api.NewClient(consulConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %w", err)
	}

	return newRegistry(client.Agent(), client.Health(), cfg.Server, logger), nil
}

func newRegistry(agent Agent, health Health, server config.ServerConfig, logger *zap.Logger) *ServiceRegistry {
	return &ServiceRegistry{agent: agent, health: health, server: server, logger: logger}
}

func (sr *ServiceRegistry) registrationID() string {
	return sr.server.ServiceID + "-http"
}

// Registration describes this instance with an HTTP health check on /health.
func (sr *ServiceRegistry) Registration() (*api.AgentServiceRegistration, error) {
	port, err := strconv.Atoi(sr.server.Port)
	if err != nil {
		return nil, fmt.Errorf("invalid service port %q: %w", sr.server.Port, err)
	}

	return &api.AgentServiceRegistration{
		ID:      sr.registrationID(),
		Name:    sr.server.ServiceName,
		Port:    port,
		Address: sr.server.ServiceAddress,
		Check: &api.AgentServiceCheck{
			HTTP:     fmt.Sprintf("http://%s:%s/health", sr.server.ServiceAddress, sr.server.Port),
			Interval: "10s",
			Timeout:  "5s",
		},
		Tags: []string{"academy", "http"},
		Meta: map[string]string{
			"protocol": "http",
		},
	}, nil
}

func (sr *ServiceRegistry) Register() error {
	registration, err := sr.Registration()
	if err != nil {
		return err
	}
	if err := sr.agent.ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register HTTP service with Consul: %w", err)
	}

	sr.logger.Info("registered with Consul", zap.String("service_id", registration.ID))
	return nil
}

func (sr *ServiceRegistry) Deregister() error {
	if err := sr.agent.ServiceDeregister(sr.registrationID()); err != nil {
		return fmt.Errorf("failed to deregister HTTP service: %w", err)
	}
	return nil
}

// GetServiceAddress returns host:port of the first healthy instance of
// serviceName speaking protocol.
func (sr *ServiceRegistry) GetServiceAddress(serviceName string, protocol string) (string, error) {
	if protocol == "" {
		protocol = "http"
	}

	services, meta, err := sr.health.Service(serviceName, "", true, &api.QueryOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to find service %s: %w", serviceName, err)
	}

	sr.logger.Debug("consul lookup",
		zap.String("service", serviceName),
		zap.Int("instances", len(services)),
		zap.Uint64("index", meta.LastIndex),
	)

	for _, service := range services {
		proto, ok := service.Service.Meta["protocol"]
		if (ok && proto == protocol) || slices.Contains(service.Service.Tags, protocol) {
			address := service.Service.Address
			if address == "" {
				address = service.Node.Address
			}
			return fmt.Sprintf("%s:%d", address, service.Service.Port), nil
		}
	}

	return "", fmt.Errorf("no healthy instances of service %s with protocol %s found", serviceName, protocol)
}
