package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/cloudchase/inference-services/classifier"
	"github.com/cloudchase/inference-services/config"
	"github.com/cloudchase/inference-services/engine"
	"github.com/cloudchase/inference-services/registry"
)

func newModelManager() (*registry.ModelManager, error) {
	dir := cfg.Registry.Dir
	if dir == "" {
		dir = registry.DefaultBaseDir()
	}
	mgr, err := registry.NewModelManager(dir)
	if err != nil {
		return nil, fmt.Errorf("init model manager: %w", err)
	}
	return mgr, nil
}

// loadEngine builds the generation engine described by the configuration.
// modelOverride, when set, replaces generator.model.
func loadEngine(modelOverride string) (*engine.Engine, error) {
	device, err := engine.ParseDevice(cfg.Generator.Device)
	if err != nil {
		return nil, err
	}
	eng := engine.New(device)

	switch cfg.Generator.Backend {
	case config.BackendRemote:
		eng.UseRemote(cfg.Generator.RemoteURL, cfg.Generator.RemoteTimeout)
	default:
		model := cfg.Generator.Model
		if modelOverride != "" {
			model = modelOverride
		}
		mgr, err := newModelManager()
		if err != nil {
			return nil, err
		}
		path, err := mgr.ResolveModelPath(model, registry.KindGenerator)
		if err != nil {
			return nil, err
		}
		log.Debugf("Loading model: %s", path)
		if err := eng.LoadModel(path, cfg.Generator.Seed); err != nil {
			return nil, err
		}
	}

	log.WithFields(logrus.Fields{
		"backend": cfg.Generator.Backend,
		"model":   eng.ModelName(),
		"path":    eng.ModelPath(),
		"device":  eng.Device(),
	}).Info("Generation model loaded")
	return eng, nil
}

// loadClassifier reads the spam classifier named by spam.model_path, which
// may also be a registered model name.
func loadClassifier() (*classifier.NaiveBayes, string, error) {
	mgr, err := newModelManager()
	if err != nil {
		return nil, "", err
	}
	path, err := mgr.ResolveModelPath(cfg.Spam.ModelPath, registry.KindSpam)
	if err != nil {
		return nil, "", err
	}
	model, err := classifier.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("load spam classifier: %w", err)
	}
	log.WithField("model", path).Info("Spam classifier loaded")
	return model, path, nil
}
